// Package entity defines the documents owned by the auth feature.
package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuthRecord is the credential-of-record for one account. Username and email
// are stored normalized (capitalized first letter, lowercased email) and are
// each unique across the collection. The JSON tags exist for queue transit
// only; API responses never carry this document.
type AuthRecord struct {
	ID                   bson.ObjectID `bson:"_id" json:"_id"`
	UID                  string        `bson:"uId" json:"uId"`
	Username             string        `bson:"username" json:"username"`
	Email                string        `bson:"email" json:"email"`
	Password             string        `bson:"password" json:"password,omitempty"`
	AvatarColor          string        `bson:"avatarColor" json:"avatarColor"`
	CreatedAt            time.Time     `bson:"createdAt" json:"createdAt"`
	PasswordResetToken   string        `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpires int64         `bson:"passwordResetExpires,omitempty" json:"-"`
}
