package discovery

import "context"

// ListFiles fetches a repository listing and normalizes it. With no
// formats every classified file is listed. The result is never nil.
func ListFiles(ctx context.Context, h Hub, repoID string, formats ...WeightFormat) ([]ArtifactGroup, error) {
	detail, err := h.ModelDetail(ctx, repoID)
	if err != nil {
		return nil, err
	}
	return Normalize(repoID, FromSiblings(detail.Siblings), formats...), nil
}
