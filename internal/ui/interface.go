package ui

import "context"

type Interface interface {
	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// PrintReport affiche un rapport rendu (overlap, Jaccard, comptages...).
	PrintReport(ctx context.Context, body []byte)

	// Confirm pose une question oui/non ; def est la réponse sur simple Entrée.
	Confirm(ctx context.Context, question string, def bool) (bool, error)

	// WaitForExit bloque jusqu'à Entrée ou annulation de ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error
}
