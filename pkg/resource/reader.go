// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package resource reads typed resources from account storage.
//
// A resource that does not exist is not an error: Read reports it as not
// found. Any other failure is a [errors.ReadFailed] error wrapping the
// cause, never a silent zero value.
package resource

import (
	"bytes"
	"context"
	"encoding/json"

	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/errors"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"golang.org/x/exp/slog"
)

// Reader reads resources through a node.
type Reader struct {
	Node   node.Querier
	Logger *slog.Logger
}

// Read reads the resource of type path held by account into v. If the
// resource or the account does not exist, Read returns false and no error.
func (r *Reader) Read(ctx context.Context, account move.Address, path string, v any) (bool, error) {
	tag, err := move.ParseStructTag(path)
	if err != nil {
		return false, errors.ReadFailed.WithCauseAndFormat(err, "read %s: invalid resource path: %v", path, err)
	}
	path = tag.String()

	res, err := r.Node.Resource(ctx, account, path)
	switch {
	case err == nil:
	case node.IsNotFound(err, node.ErrCodeResourceNotFound, node.ErrCodeAccountNotFound):
		logging.OrDiscard(r.Logger).DebugContext(ctx, "Resource not found", "module", "resource", "account", account, "type", path)
		return false, nil
	default:
		return false, errors.ReadFailed.WithCauseAndFormat(err, "read %s from %v: %v", path, account, err)
	}

	if v == nil {
		return true, nil
	}

	dec := json.NewDecoder(bytes.NewReader(res.Data))
	dec.UseNumber()
	err = dec.Decode(v)
	if err != nil {
		cause := errors.EncodingError.WithFormat("decode %s: %w", path, err)
		return false, errors.ReadFailed.WithCauseAndFormat(cause, "read %s from %v: %v", path, account, cause)
	}
	return true, nil
}

// Get reads a resource of type path and decodes it as T.
func Get[T any](ctx context.Context, r *Reader, account move.Address, path string) (*T, bool, error) {
	v := new(T)
	ok, err := r.Read(ctx, account, path, v)
	if err != nil || !ok {
		return nil, ok, err
	}
	return v, true, nil
}

// Field reads a resource and returns one top-level field of its data, still
// encoded.
func Field(ctx context.Context, r *Reader, account move.Address, path, field string) (json.RawMessage, bool, error) {
	var data map[string]json.RawMessage
	ok, err := r.Read(ctx, account, path, &data)
	if err != nil || !ok {
		return nil, ok, err
	}
	v, ok := data[field]
	if !ok {
		return nil, false, errors.ReadFailed.WithFormat("read %s from %v: resource has no field %q", path, account, field)
	}
	return v, true, nil
}
