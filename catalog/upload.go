// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"time"

	"github.com/danielhkuo/exam-archive/models"
)

// Upload is the create flow: default the year, normalise, validate, and
// only then add through the store. Invalid input never reaches the remote.
func Upload(ctx context.Context, s *Store, in models.ExamInput) Result {
	if in.Year == 0 {
		in.Year = time.Now().Year()
	}
	in = Normalize(in)
	if err := ValidateInput(in); err != nil {
		return failed(err)
	}
	return s.Add(ctx, in)
}

// Edit is the update flow: normalise and validate the patch, then update
func Edit(ctx context.Context, s *Store, id string, patch models.ExamPatch) Result {
	patch = NormalizePatch(patch)
	if err := ValidatePatch(patch); err != nil {
		return failed(err)
	}
	return s.Update(ctx, id, patch)
}
