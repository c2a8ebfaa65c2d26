package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/item/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Item interface {
	InsertReturning(ctx context.Context, model model.Item) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type Comment interface {
	InsertReturning(ctx context.Context, model model.Comment) (int64, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CommentDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Item]
}

func New(db *postgres.Connection, otel otel.Otel) Item {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Item](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type commentRepositoryImpl struct {
	writer gRepo.Repository[model.Comment]
	reader gRepo.Repository[model.CommentDetail]
}

func NewComment(db *postgres.Connection, otel otel.Otel) Comment {
	return &commentRepositoryImpl{
		writer: gRepo.NewRepository[model.Comment](model.CommentEntityName, model.CommentTableName, model.FieldCommentID, db, otel),
		reader: gRepo.NewRepository[model.CommentDetail](model.CommentEntityName, model.CommentTableName, model.FieldCommentID, db, otel),
	}
}

func (r *commentRepositoryImpl) InsertReturning(ctx context.Context, model model.Comment) (int64, error) {
	return r.writer.InsertReturning(ctx, model)
}

func (r *commentRepositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CommentDetail, error) {
	return r.reader.GetAll(ctx, params, filter, columns...)
}
