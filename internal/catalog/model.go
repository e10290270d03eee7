package catalog

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a catalog category as stored in category_data
type Category struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ID       int64              `bson:"id" json:"id"`
	Img      string             `bson:"img" json:"img"`
	Name     string             `bson:"name" json:"name"`
}

// Product is a catalog product as stored in products.
// ID is the numeric business identifier, not the storage _id.
type Product struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ID          int64              `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    int64              `bson:"category" json:"category"`
	Img         string             `bson:"img" json:"img"`
	Description string             `bson:"description" json:"description"`
	Price       string             `bson:"price" json:"price"`
	Colors      bson.M             `bson:"colors,omitempty" json:"colors,omitempty"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
}

// HeroVariant names a hero image set
type HeroVariant string

const (
	HeroDesktop HeroVariant = "desktop"
	HeroMobile  HeroVariant = "mobile"
)

// Field is the misc_data document field holding the variant's image list
func (v HeroVariant) Field() string {
	return string(v) + "_hero_images"
}

// Valid reports whether v is a known variant
func (v HeroVariant) Valid() bool {
	return v == HeroDesktop || v == HeroMobile
}

// HeroImages is the response body for a hero image set
type HeroImages struct {
	Images []string `json:"images"`
}
