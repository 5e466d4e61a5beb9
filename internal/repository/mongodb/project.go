package mongodb

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	projectsCollection = "projects"
	indexTimeout       = 30 * time.Second

	errProjectNotFound = "project not found"
	errProjectExists   = "project with this id already exists"

	errFailedCreateIndexesFmt = "failed to create project indexes: %w"
	errFailedListProjectsFmt  = "failed to list projects: %w"
	errFailedDecodeListFmt    = "failed to decode projects: %w"
	errFailedGetProjectFmt    = "failed to get project: %w"
	errFailedCreateProjectFmt = "failed to create project: %w"
	errFailedUpdateProjectFmt = "failed to update project: %w"
	errFailedDeleteProjectFmt = "failed to delete project: %w"
)

type ProjectRepository struct {
	db         *DB
	collection *mongo.Collection
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{
		db:         db,
		collection: db.Database.Collection(projectsCollection),
	}
}

// EnsureIndexes mirrors the lookups the API performs: by id, by owner and newest first.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "lastModified", Value: -1}},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf(errFailedCreateIndexesFmt, err)
	}

	return nil
}

func (r *ProjectRepository) List(ctx context.Context, filter project.ListFilter) ([]*project.Summary, error) {
	query := bson.M{}
	if filter.PublicOnly {
		query["isPublic"] = true
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "lastModified", Value: -1}}).
		SetProjection(bson.M{"_id": 0, "files.content": 0})
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, fmt.Errorf(errFailedListProjectsFmt, err)
	}
	defer cursor.Close(ctx)

	summaries := make([]*project.Summary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf(errFailedDecodeListFmt, err)
	}

	return summaries, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, fmt.Errorf(errFailedGetProjectFmt, err)
	}

	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.BadRequest(errProjectExists)
		}
		return fmt.Errorf(errFailedCreateProjectFmt, err)
	}

	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, update project.ProjectUpdate) (*project.Project, error) {
	set := bson.M{"lastModified": update.LastModified}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Files != nil {
		set["files"] = *update.Files
	}
	if update.IsPublic != nil {
		set["isPublic"] = *update.IsPublic
	}

	var p project.Project
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, fmt.Errorf(errFailedUpdateProjectFmt, err)
	}

	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf(errFailedDeleteProjectFmt, err)
	}

	if result.DeletedCount == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}

func (r *ProjectRepository) Close(ctx context.Context) error {
	return r.db.Close(ctx)
}
