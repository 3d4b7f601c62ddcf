// Package models contains the server-side data model.
package models

import "time"

// User represents one account in the users collection.
//
// The password hash and the stored refresh token are never serialized to
// JSON. The refresh token is a single slot: at most one refresh token is
// valid per user at any time, and rotating or logging out overwrites it.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	FullName     string    `bson:"full_name" json:"fullName"`
	UserName     string    `bson:"username" json:"userName"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"password" json:"-"`
	Avatar       string    `bson:"avatar" json:"avatar"`
	CoverImage   string    `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	RefreshToken string    `bson:"refresh_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
