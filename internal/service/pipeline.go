// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/restgen/restgen/models"
)

// Hook is a pre- or post-processing step invoked by the resource service
// around a mutating operation. It receives the acting user and the document
// in its current shape and returns the (possibly replaced) document. A hook
// error aborts the operation.
type Hook func(ctx context.Context, user models.User, document models.Document) (models.Document, error)

// Pipeline holds ordered hook chains around the mutating resource
// operations. A zero Pipeline is valid and runs nothing.
type Pipeline struct {
	BeforeCreate []Hook
	AfterCreate  []Hook

	BeforeUpdate []Hook
	AfterUpdate  []Hook

	// Delete hooks receive the stored document about to be (or just)
	// removed. Their returned document is ignored.
	BeforeDelete []Hook
	AfterDelete  []Hook
}

// run feeds document through hooks in order, stopping at the first error.
func run(ctx context.Context, hooks []Hook, user models.User, document models.Document) (models.Document, error) {
	var err error
	for _, hook := range hooks {
		document, err = hook(ctx, user, document)
		if err != nil {
			return nil, err
		}
	}

	return document, nil
}
