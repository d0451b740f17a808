package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
)

type StationRepository interface {
	// Get renvoie ErrNotFound tant qu'aucune sélection n'a été sauvegardée.
	Get(ctx context.Context) (domain.PersistedRecord, error)
	// Replace supprime l'enregistrement existant puis insère le nouveau, dans une seule opération logique.
	Replace(ctx context.Context, selections []domain.StationSelection) (domain.PersistedRecord, error)
}
