package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/rolodex-cli/rolodex/internal/tui"
)

func newBrowseCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse contacts in a full-screen terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("browse does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				return tui.Run(tui.Options{
					Client: &serviceBrowser{svc: svc},
					IsTTY: func() bool {
						return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
					},
				})
			})
		},
	}
}

// serviceBrowser adapts the contact service to the browser's data source.
type serviceBrowser struct {
	svc contactService
}

func (b *serviceBrowser) ListContacts(ctx context.Context) ([]tui.Contact, error) {
	contacts, err := b.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]tui.Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, tui.Contact{Name: c.Name, Email: c.Email, Phone: c.Phone})
	}
	return out, nil
}
