package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prompt types
const (
	PromptTypeText         = "text"
	PromptTypeImage        = "image"
	PromptTypeCode         = "code"
	PromptTypeConversation = "conversation"
	PromptTypeAgent        = "agent"
	PromptTypeChain        = "chain"
)

// Prompt visibility
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Prompt represents a shareable AI prompt stored in MongoDB
type Prompt struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RepoID          uint               `json:"repo_id" bson:"repo_id"`
	UserID          uint               `json:"user_id" bson:"user_id"` // ID of the user who owns the prompt
	Title           string             `json:"title" bson:"title"`
	Slug            string             `json:"slug" bson:"slug"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Content         string             `json:"content" bson:"content"`
	Type            string             `json:"type" bson:"type"` // text, image, code, conversation, agent, chain
	Tags            []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	Category        string             `json:"category,omitempty" bson:"category,omitempty"`
	ModelCompat     []string           `json:"model_compat,omitempty" bson:"model_compat,omitempty"`
	Visibility      string             `json:"visibility" bson:"visibility"` // public, private
	Version         string             `json:"version,omitempty" bson:"version,omitempty"`
	ParentID        string             `json:"parent_id,omitempty" bson:"parent_id,omitempty"` // fork lineage
	MetaDescription string             `json:"meta_description,omitempty" bson:"meta_description,omitempty"`
	Hearts          int                `json:"hearts" bson:"hearts"`
	SaveCount       int                `json:"save_count" bson:"save_count"`
	ForkCount       int                `json:"fork_count" bson:"fork_count"`
	CommentCount    int                `json:"comment_count" bson:"comment_count"`
	ViewCount       int                `json:"view_count" bson:"view_count"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`

	// Session-only flags, never persisted
	IsHearted bool `json:"is_hearted,omitempty" bson:"-"`
	IsSaved   bool `json:"is_saved,omitempty" bson:"-"`
}

// CreatePromptRequest defines the request body for creating a new prompt
type CreatePromptRequest struct {
	RepoID      uint     `json:"repo_id" validate:"required"`
	Title       string   `json:"title" validate:"required,min=1,max=120"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Content     string   `json:"content" validate:"required,min=1"`
	Type        string   `json:"type" validate:"required,oneof=text"` // only text prompts can be created
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10"`
	Category    string   `json:"category,omitempty"`
	ModelCompat []string `json:"model_compat,omitempty" validate:"omitempty,max=5"`
	Visibility  string   `json:"visibility" validate:"required,oneof=public private"`
}

// UpdatePromptRequest defines the request body for updating an existing prompt
type UpdatePromptRequest struct {
	Title       string   `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description string   `json:"description,omitempty" validate:"omitempty,max=500"`
	Content     string   `json:"content,omitempty" validate:"omitempty,min=1"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=10"`
	Category    string   `json:"category,omitempty"`
	ModelCompat []string `json:"model_compat,omitempty" validate:"omitempty,max=5"`
	Visibility  string   `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
	Version     string   `json:"version,omitempty"`
}
