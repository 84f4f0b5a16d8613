package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"promptkit/internal/domain/models"
	"promptkit/internal/extension"
	"promptkit/internal/filter"
)

var promptTags []string

type promptRow struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Folder   string `json:"folder,omitempty" yaml:"folder,omitempty"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Public   bool   `json:"public" yaml:"public"`
}

func promptRows(prompts []models.ExtensionPrompt, opts models.FilterOptions) []promptRow {
	folderNames := make(map[string]string, len(opts.Folders))
	for _, f := range opts.Folders {
		folderNames[f.ID] = f.Name
	}

	rows := make([]promptRow, 0, len(prompts))
	for _, p := range prompts {
		row := promptRow{ID: p.ID, Title: p.Title, Public: p.IsPublic}
		if p.FolderID != nil {
			row.Folder = folderNames[*p.FolderID]
		}
		if p.CategoryName != nil {
			row.Category = *p.CategoryName
		}
		rows = append(rows, row)
	}
	return rows
}

// selectTags activates every tag on tab. --tag builds a set, so a tag that
// is already active is not clicked again (a click would toggle it off).
func selectTags(popup *extension.Popup, tab filter.Tab, tags []string) {
	for _, tag := range tags {
		if !popup.Selection(tab).Has(tag) {
			popup.Click(tab, tag)
		}
	}
}

var promptsCmd = &cobra.Command{
	Use:       "prompts [created|liked]",
	Short:     "List the prompts you created or liked",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(filter.TabCreated), string(filter.TabLiked)},
	Long: `List the prompts on the created (default) or liked tab.

Each --tag is a folder or category id as shown by 'promptkit prompts tags'.
A prompt is listed when it matches any of the given tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tab := filter.TabCreated
		if len(args) == 1 {
			var err error
			if tab, err = filter.ParseTab(args[0]); err != nil {
				return err
			}
		}

		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		popup, err := e.signedInPopup(cmd)
		if err != nil {
			return err
		}

		popup.Refresh(cmd.Context())
		if err := popup.TabError(tab); err != nil {
			return fmt.Errorf("failed to load %s prompts: %w", tab, err)
		}
		selectTags(popup, tab, promptTags)

		return output(cmd.OutOrStdout(), promptRows(popup.Visible(tab), popup.FilterOptions()))
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the folder and category tags you can filter by",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		popup, err := e.signedInPopup(cmd)
		if err != nil {
			return err
		}
		popup.Refresh(cmd.Context())
		return output(cmd.OutOrStdout(), popup.FilterOptions())
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <prompt-id>",
	Short: "Print a prompt's content and count the copy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		popup, err := e.signedInPopup(cmd)
		if err != nil {
			return err
		}

		content, err := popup.Copy(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	},
}

var foldersEditing string

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Show your folders as the parent picker lists them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		popup, err := e.signedInPopup(cmd)
		if err != nil {
			return err
		}

		options, err := e.client.WithToken(popup.Session().AuthToken).ParentOptions(cmd.Context(), foldersEditing)
		if err != nil {
			return err
		}
		for _, o := range options {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", o.ID, o.DisplayName)
		}
		return nil
	},
}

func init() {
	promptsCmd.Flags().StringSliceVarP(&promptTags, "tag", "t", nil, "folder or category id to filter by (repeatable)")
	promptsCmd.AddCommand(tagsCmd)
	foldersCmd.Flags().StringVar(&foldersEditing, "editing", "", "id of the folder being edited; it and its descendants are left out")
}
