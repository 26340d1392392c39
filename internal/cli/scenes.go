package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// scenesCommand creates the scenes command, listing the narrative
// steps and their output files.
func (c *CLI) scenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the workflow scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			story, err := loadStory()
			if err != nil {
				return err
			}

			for i := range story.Scenes {
				sc := &story.Scenes[i]
				printKeyValue(sc.ID, sc.Title)
				printDetail("writes %s", sc.File)
			}
			printInfo("%d scenes, %d palette entries, %d branches",
				len(story.Scenes), len(story.Palette), len(story.Branches))
			return nil
		},
	}
}

// sceneIDs returns the valid scene IDs for flag help and validation.
func sceneIDs() []string {
	story, err := loadStory()
	if err != nil {
		return nil
	}
	ids := make([]string, len(story.Scenes))
	for i := range story.Scenes {
		ids[i] = story.Scenes[i].ID
	}
	return ids
}

// describeSceneIDs formats the scene IDs for usage strings.
func describeSceneIDs() string {
	ids := sceneIDs()
	if len(ids) == 0 {
		return ""
	}
	out := ids[0]
	for _, id := range ids[1:] {
		out = fmt.Sprintf("%s|%s", out, id)
	}
	return out
}
