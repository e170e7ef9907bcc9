package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NotificationSettings holds the per-channel notification preferences,
// all enabled by default at signup.
type NotificationSettings struct {
	Messages  bool `bson:"messages" json:"messages"`
	Reactions bool `bson:"reactions" json:"reactions"`
	Comments  bool `bson:"comments" json:"comments"`
	Follows   bool `bson:"follows" json:"follows"`
}

// SocialLinks holds the per-platform profile URLs, empty by default.
type SocialLinks struct {
	Facebook  string `bson:"facebook" json:"facebook"`
	Instagram string `bson:"instagram" json:"instagram"`
	Twitter   string `bson:"twitter" json:"twitter"`
	Youtube   string `bson:"youtube" json:"youtube"`
}

// UserProfile is the denormalized display projection of an account,
// one-to-one with its AuthRecord. The AuthRecord stays authoritative for
// credentials; this document is authoritative for display data.
type UserProfile struct {
	ID             bson.ObjectID        `bson:"_id" json:"_id"`
	AuthID         bson.ObjectID        `bson:"authId" json:"authId"`
	UID            string               `bson:"uId" json:"uId"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	AvatarColor    string               `bson:"avatarColor" json:"avatarColor"`
	ProfilePicture string               `bson:"profilePicture" json:"profilePicture"`
	Blocked        []bson.ObjectID      `bson:"blocked" json:"blocked"`
	BlockedBy      []bson.ObjectID      `bson:"blockedBy" json:"blockedBy"`
	Work           string               `bson:"work" json:"work"`
	Location       string               `bson:"location" json:"location"`
	School         string               `bson:"school" json:"school"`
	Quote          string               `bson:"quote" json:"quote"`
	BgImageVersion string               `bson:"bgImageVersion" json:"bgImageVersion"`
	BgImageID      string               `bson:"bgImageId" json:"bgImageId"`
	FollowersCount int                  `bson:"followersCount" json:"followersCount"`
	FollowingCount int                  `bson:"followingCount" json:"followingCount"`
	PostsCount     int                  `bson:"postsCount" json:"postsCount"`
	Notifications  NotificationSettings `bson:"notifications" json:"notifications"`
	Social         SocialLinks          `bson:"social" json:"social"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}
