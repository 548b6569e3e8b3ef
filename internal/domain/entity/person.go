package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person is a marketplace identity keyed by wallet address. Wallet is
// stored lower-cased and compared case-insensitively; username and
// email, when set, are unique case-insensitively across other persons.
type Person struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Wallet   string             `json:"wallet" bson:"wallet"`
	Username string             `json:"username" bson:"username"`
	Bio      string             `json:"bio" bson:"bio"`
	Social   string             `json:"social" bson:"social"`
	Email    string             `json:"email,omitempty" bson:"email,omitempty"`
	PhotoURL string             `json:"photoUrl" bson:"photoUrl"`
	OptIn    bool               `json:"optIn" bson:"optIn"`

	// Nonce is monotonic, starts at 0. Consumed by signature auth, which
	// lives outside this service.
	Nonce int64 `json:"nonce" bson:"nonce"`

	// Derived at read time.
	Items       int64 `json:"nfts" bson:"-"`
	Collections int64 `json:"collections" bson:"-"`
}
