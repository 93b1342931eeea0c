package mocforge

import "github.com/mocforge/mocforge/pkg/assets"

// Result summarizes one import run.
type Result struct {
	// Model is the name derived from the descriptor path.
	Model string

	// AssetGUID and PrefabGUID identify the committed artifacts.
	AssetGUID  assets.GUID
	PrefabGUID assets.GUID

	// FirstImport is true when no prior prefab existed.
	FirstImport bool

	// Skipped is true when an unchanged moc short-circuited the run.
	Skipped bool

	// Leaf item counts of the freshly generated reserved subtrees.
	Parameters int
	Parts      int
	Drawables  int

	// CarriedNodes and CarriedComponents count what reconciliation
	// grafted over from the previous hierarchy.
	CarriedNodes      int
	CarriedComponents int

	// Textures and Materials are the resolved asset references, one per
	// texture slot.
	Textures  []string
	Materials []string
}
