package gateway

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/KingCobra-dev/goprompt-sub000/internal/models"
)

// PromptFilter narrows a prompt listing. Zero values mean "no constraint".
type PromptFilter struct {
	UserID     uint
	RepoID     uint
	Visibility string
	Query      string
	Types      []string
	Tags       []string
	Category   string
	SortBy     string
	Skip       int64
	Limit      int64
}

// PromptGateway defines the interface for prompt data operations
type PromptGateway interface {
	GetAll(ctx context.Context, filter PromptFilter) ([]models.Prompt, error)
	GetByID(ctx context.Context, id string) (*models.Prompt, error)
	Create(ctx context.Context, prompt *models.Prompt) error
	Update(ctx context.Context, id string, prompt *models.Prompt) error
	Delete(ctx context.Context, id string) error
	DeleteByRepoID(ctx context.Context, repoID uint) error
	IncrementViewCount(ctx context.Context, promptID string) error
	AdjustHearts(ctx context.Context, promptID string, delta int) error
	AdjustSaveCount(ctx context.Context, promptID string, delta int) error
	AdjustForkCount(ctx context.Context, promptID string, delta int) error
	AdjustCommentCount(ctx context.Context, promptID string, delta int) error
}

// MongoPromptGateway implements PromptGateway for MongoDB
type MongoPromptGateway struct {
	collection *mongo.Collection
}

// NewMongoPromptGateway creates a new MongoPromptGateway
func NewMongoPromptGateway(db *mongo.Database) *MongoPromptGateway {
	return &MongoPromptGateway{collection: db.Collection("prompts")}
}

// GetAll retrieves prompts matching the filter, newest first unless the
// filter asks for another sort order.
func (g *MongoPromptGateway) GetAll(ctx context.Context, filter PromptFilter) ([]models.Prompt, error) {
	query := bson.M{}
	if filter.UserID != 0 {
		query["user_id"] = filter.UserID
	}
	if filter.RepoID != 0 {
		query["repo_id"] = filter.RepoID
	}
	if filter.Visibility != "" {
		query["visibility"] = filter.Visibility
	}
	if filter.Query != "" {
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": filter.Query, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": filter.Query, "$options": "i"}},
		}
	}
	if len(filter.Types) > 0 {
		query["type"] = bson.M{"$in": filter.Types}
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$in": filter.Tags}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch filter.SortBy {
	case models.SortHearts, models.SortTrending:
		sort = bson.D{{Key: "hearts", Value: -1}, {Key: "created_at", Value: -1}}
	case models.SortStars:
		sort = bson.D{{Key: "save_count", Value: -1}, {Key: "created_at", Value: -1}}
	}

	findOptions := options.Find().SetSkip(filter.Skip).SetSort(sort)
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}

	cursor, err := g.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var prompts []models.Prompt
	if err = cursor.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// GetByID retrieves a prompt by ID from MongoDB
func (g *MongoPromptGateway) GetByID(ctx context.Context, id string) (*models.Prompt, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt ID format: %w", err)
	}

	var prompt models.Prompt
	err = g.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&prompt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("prompt not found")
		}
		return nil, err
	}
	return &prompt, nil
}

// Create creates a new prompt in MongoDB
func (g *MongoPromptGateway) Create(ctx context.Context, prompt *models.Prompt) error {
	prompt.ID = primitive.NewObjectID()
	prompt.CreatedAt = time.Now()
	prompt.UpdatedAt = time.Now()
	_, err := g.collection.InsertOne(ctx, prompt)
	return err
}

// Update updates an existing prompt in MongoDB
func (g *MongoPromptGateway) Update(ctx context.Context, id string, prompt *models.Prompt) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid prompt ID format: %w", err)
	}

	prompt.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":            prompt.Title,
			"slug":             prompt.Slug,
			"description":      prompt.Description,
			"content":          prompt.Content,
			"tags":             prompt.Tags,
			"category":         prompt.Category,
			"model_compat":     prompt.ModelCompat,
			"visibility":       prompt.Visibility,
			"version":          prompt.Version,
			"meta_description": prompt.MetaDescription,
			"updated_at":       prompt.UpdatedAt,
		},
	}
	res, err := g.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("prompt not found")
	}
	return nil
}

// Delete deletes a prompt by ID from MongoDB
func (g *MongoPromptGateway) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid prompt ID format: %w", err)
	}

	res, err := g.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("prompt not found")
	}
	return nil
}

// DeleteByRepoID deletes every prompt belonging to a repo (repo deletion cascade)
func (g *MongoPromptGateway) DeleteByRepoID(ctx context.Context, repoID uint) error {
	_, err := g.collection.DeleteMany(ctx, bson.M{"repo_id": repoID})
	return err
}

// IncrementViewCount increments the view count of a prompt
func (g *MongoPromptGateway) IncrementViewCount(ctx context.Context, promptID string) error {
	return g.adjust(ctx, promptID, "view_count", 1)
}

// AdjustHearts adjusts the heart counter of a prompt by delta
func (g *MongoPromptGateway) AdjustHearts(ctx context.Context, promptID string, delta int) error {
	return g.adjust(ctx, promptID, "hearts", delta)
}

// AdjustSaveCount adjusts the save counter of a prompt by delta
func (g *MongoPromptGateway) AdjustSaveCount(ctx context.Context, promptID string, delta int) error {
	return g.adjust(ctx, promptID, "save_count", delta)
}

// AdjustForkCount adjusts the fork counter of a prompt by delta
func (g *MongoPromptGateway) AdjustForkCount(ctx context.Context, promptID string, delta int) error {
	return g.adjust(ctx, promptID, "fork_count", delta)
}

// AdjustCommentCount adjusts the comment counter of a prompt by delta
func (g *MongoPromptGateway) AdjustCommentCount(ctx context.Context, promptID string, delta int) error {
	return g.adjust(ctx, promptID, "comment_count", delta)
}

func (g *MongoPromptGateway) adjust(ctx context.Context, promptID, field string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(promptID)
	if err != nil {
		return fmt.Errorf("invalid prompt ID format: %w", err)
	}
	_, err = g.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{field: delta}})
	return err
}
