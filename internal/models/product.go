// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string  `json:"nom" gorm:"size:255;not null;index"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"prix" gorm:"type:decimal(10,2);not null"`
	Quantity    int     `json:"quantite" gorm:"not null;default:0"`
	Category    string  `json:"categorie" gorm:"size:100;index"`
	Brand       string  `json:"marque" gorm:"size:100"`
	Color       string  `json:"couleur" gorm:"size:50"`
	Year        int     `json:"annee"`
	ImageURL    string  `json:"imageUrl" gorm:"size:512"`
	ImageKey    string  `json:"-" gorm:"size:255"`

	// Relationships
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:ProductID"`
}
