package port

import (
	"context"

	"github.com/mbeaumont/assets-ms-go/internal/model"
)

// Deriver generates the fixed derivative set (thumbnail + responsive
// widths) for a stored original. Implementations write the derivative files
// themselves but never delete anything; cleanup on failure belongs to the
// lifecycle manager.
type Deriver interface {
	GenerateDerivatives(ctx context.Context, ref model.AssetRef, meta model.Metadata) (model.Variants, error)
}
