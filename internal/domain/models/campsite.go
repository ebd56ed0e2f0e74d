// internal/domain/models/campsite.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campsite is the primary resource entity: a place people can camp at,
// with an embedded, ordered array of review comments. Comments have no
// existence outside their parent campsite document.
type Campsite struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Elevation   int                `bson:"elevation,omitempty" json:"elevation,omitempty"`
	Cost        float64            `bson:"cost,omitempty" json:"cost,omitempty"`
	Featured    bool               `bson:"featured" json:"featured"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment is a sub-document of Campsite. Author always holds the ObjectID
// of the user who wrote the comment; it is canonicalized to an ObjectID
// before any persistence or comparison.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	Rating int                `bson:"rating" json:"rating"`
	Text   string             `bson:"text" json:"text"`
	Author primitive.ObjectID `bson:"author" json:"author"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
