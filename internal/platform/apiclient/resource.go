package apiclient

import (
	"context"
	"net/http"
	"strconv"
)

// Resource is a typed handle on one CRUD collection of the backend.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, http.MethodGet, r.path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var item T
	err := r.client.Do(ctx, http.MethodGet, r.itemPath(id), nil, &item)
	return item, err
}

func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := r.client.Do(ctx, http.MethodPost, r.path, item, &created)
	return created, err
}

func (r *Resource[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	var updated T
	err := r.client.Do(ctx, http.MethodPut, r.itemPath(id), item, &updated)
	return updated, err
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}
