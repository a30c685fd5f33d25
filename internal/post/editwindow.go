package post

import "time"

// EditWindow durée pendant laquelle un post reste modifiable par son auteur
const EditWindow = 60 * time.Minute

// withinEditWindow comparaison en temps absolu (UTC), fenêtre fixe
// depuis la création
func withinEditWindow(createdAt, now time.Time) bool {
	return now.UTC().Sub(createdAt.UTC()) <= EditWindow
}
