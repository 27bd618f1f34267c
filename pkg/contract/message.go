// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package contract

import (
	"context"

	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/resource"
)

const MessageModule = "appcolla"

// CollInfo is the message resource, {module}::appcolla::CollInfo.
type CollInfo struct {
	Msg string `json:"msg"`
}

// CollInfoPath returns the message resource type for the module address.
func CollInfoPath(module move.Address) string {
	return move.StructOf(module, MessageModule, "CollInfo").String()
}

// WriteMessage stores msg under the sender.
func WriteMessage(ctx context.Context, x Executor, sender client.Sender, module move.Address, msg string) (*client.Outcome, error) {
	fn := move.NewFunctionID(module, MessageModule, "write")
	return x.Execute(ctx, sender, x.Call(fn).WithArgs(msg))
}

// GetMessage calls get for the owner's message. The call aborts if the
// owner has no message.
func GetMessage(ctx context.Context, x Executor, sender client.Sender, module, owner move.Address) (*client.Outcome, error) {
	fn := move.NewFunctionID(module, MessageModule, "get")
	return x.Execute(ctx, sender, x.Call(fn).WithArgs(owner))
}

// ReadMessage reads the owner's message. It returns false if there is none.
func ReadMessage(ctx context.Context, r *resource.Reader, module, owner move.Address) (string, bool, error) {
	info, ok, err := resource.Get[CollInfo](ctx, r, owner, CollInfoPath(module))
	if err != nil || !ok {
		return "", false, err
	}
	return info.Msg, true, nil
}
