package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/booking/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertReturningTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error)
}

// repositoryImpl writes through the bare bookings table and reads the joined detail view.
type repositoryImpl struct {
	writer gRepo.Repository[model.Booking]
	reader gRepo.Repository[model.BookingDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		writer: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		reader: gRepo.NewRepository[model.BookingDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) InsertReturningTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error) {
	return r.writer.InsertReturningTx(ctx, sqltx, model)
}

func (r *repositoryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error) {
	return r.writer.GetForUpdateTx(ctx, sqltx, filter, columns...)
}

func (r *repositoryImpl) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error {
	return r.writer.UpdateTx(ctx, sqltx, req, filter)
}

func (r *repositoryImpl) Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	return r.writer.Exist(ctx, filter)
}

func (r *repositoryImpl) Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BookingDetail, error) {
	return r.reader.Get(ctx, filter, columns...)
}

func (r *repositoryImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BookingDetail, error) {
	return r.reader.GetAll(ctx, params, filter, columns...)
}
