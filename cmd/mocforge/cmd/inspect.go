package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/mocforge/mocforge/pkg/errors"
	"github.com/mocforge/mocforge/pkg/hierarchy"
	"github.com/mocforge/mocforge/pkg/model3"
)

var inspectDump bool

// inspectCmd prints a summary of a descriptor or a persisted prefab.
var inspectCmd = &cobra.Command{
	Use:   "inspect <model3.json|prefab>",
	Short: "Inspect a descriptor or a persisted prefab",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectDump, "dump", false, "dump the full parsed structure")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	switch {
	case strings.HasSuffix(path, model3.Suffix):
		return inspectDescriptor(path)
	case strings.HasSuffix(path, ".prefab"):
		return inspectPrefab(path)
	default:
		return errors.NewValidationError("path", path, "expected a .model3.json or .prefab file")
	}
}

func inspectDescriptor(path string) error {
	desc, err := model3.ParseFile(path)
	if err != nil {
		return err
	}

	if inspectDump {
		spew.Dump(desc)
		return nil
	}

	fmt.Printf("Model:       %s\n", model3.Name(path))
	fmt.Printf("Moc:         %s\n", desc.FileReferences.Moc)
	fmt.Printf("Textures:    %d\n", len(desc.FileReferences.Textures))
	fmt.Printf("Motions:     %d groups\n", len(desc.FileReferences.Motions))
	fmt.Printf("Expressions: %d\n", len(desc.FileReferences.Expressions))
	fmt.Printf("Hit areas:   %d\n", len(desc.HitAreas))
	if desc.FileReferences.DisplayInfo != "" {
		fmt.Printf("DisplayInfo: %s\n", desc.FileReferences.DisplayInfo)
	}
	return nil
}

func inspectPrefab(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	codec := hierarchy.NewCodec(hierarchy.DefaultRegistry())
	model, err := codec.UnmarshalModel(data)
	if err != nil {
		return err
	}

	if inspectDump {
		spew.Dump(model)
		return nil
	}

	fmt.Printf("Model: %s\n", model.Name)
	for _, reserved := range hierarchy.ReservedNames {
		subtree := model.Root.FindChild(reserved)
		if subtree == nil {
			continue
		}
		fmt.Printf("%s: %d\n", reserved, len(subtree.Children))
	}

	extras := 0
	for _, child := range model.Root.Children {
		if !hierarchy.IsReserved(child.Name) {
			extras++
		}
	}
	if extras > 0 {
		fmt.Printf("User nodes: %d\n", extras)
	}
	return nil
}
