package crmapi

import (
	"context"
	"fmt"
	"net/http"
)

// pathSet holds the path templates of one resource. Item templates take the
// numeric id as their single verb.
type pathSet struct {
	list   string
	item   string
	create string
	update string
	delete string
}

// restPaths is the uniform router layout: collection at base, item at
// base{id}/ for read, update and delete.
func restPaths(base string) pathSet {
	return pathSet{
		list:   base,
		item:   base + "%d/",
		create: base,
		update: base + "%d/",
		delete: base + "%d/",
	}
}

// meetingPaths follows the backend meeting views, which use verb-prefixed
// routes for writes.
var meetingPaths = pathSet{
	list:   "/meetings/",
	item:   "/meetings/%d/",
	create: "/meetings/create/",
	update: "/meetings/update/%d/",
	delete: "/meetings/delete/%d/",
}

// resource implements the list/get/create/update/delete quintet for T.
type resource[T any] struct {
	c        *Client
	singular string
	plural   string
	paths    pathSet
}

func newResource[T any](c *Client, singular, plural string, paths pathSet) resource[T] {
	return resource[T]{c: c, singular: singular, plural: plural, paths: paths}
}

func (r resource[T]) list(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, "list_"+r.plural, http.MethodGet, r.paths.list, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resource[T]) get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.c.do(ctx, "get_"+r.singular, http.MethodGet, fmt.Sprintf(r.paths.item, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) create(ctx context.Context, in *T) (*T, error) {
	var out T
	if err := r.c.do(ctx, "create_"+r.singular, http.MethodPost, r.paths.create, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) update(ctx context.Context, id int64, in *T) (*T, error) {
	var out T
	if err := r.c.do(ctx, "update_"+r.singular, http.MethodPut, fmt.Sprintf(r.paths.update, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resource[T]) delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, "delete_"+r.singular, http.MethodDelete, fmt.Sprintf(r.paths.delete, id), nil, nil, nil)
}
