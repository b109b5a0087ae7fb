package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rolodex-cli/rolodex/internal/contact"
	"github.com/rolodex-cli/rolodex/internal/storage"
)

func newAddCommand(deps commandDeps) *cobra.Command {
	var (
		name  string
		email string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("add does not accept positional arguments")
			}
			if strings.TrimSpace(name) == "" {
				return usageErrorf("add requires --name")
			}
			if strings.TrimSpace(email) == "" {
				return usageErrorf("add requires --email")
			}

			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				id, err := svc.Add(ctx, name, email, phone)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, map[string]any{
						"id":    id,
						"name":  name,
						"email": email,
						"phone": contact.NormalizePhone(phone),
					})
				}
				_, err = fmt.Fprintf(deps.out, "Added contact %s (id %d)\n", name, id)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email (unique)")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone number")
	return cmd
}

func newListCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List all contacts ordered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("ls does not accept positional arguments")
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				contacts, err := svc.List(ctx)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					if contacts == nil {
						contacts = []contact.Contact{}
					}
					return printJSON(deps.out, contacts)
				}
				if len(contacts) == 0 {
					_, err := fmt.Fprintln(deps.out, "No contacts found")
					return err
				}
				for _, c := range contacts {
					if _, err := fmt.Fprintf(deps.out, "%s <%s> %s\n", c.Name, c.Email, c.Phone); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newFindCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "find <name|email> <value>",
		Short: "Find a contact by name or email",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageErrorf("find requires a query field (name or email) and a value")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := storage.ParseField(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				found, err := svc.Find(ctx, field, args[1])
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, found)
				}
				_, err = fmt.Fprintf(deps.out, "%s <%s> %s\n", found.Name, found.Email, found.Phone)
				return err
			})
		},
	}
}

func newUpdatePhoneCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "update-phone <name|email> <value> <phone>",
		Short: "Update the phone number of matching contacts",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return usageErrorf("update-phone requires a query field, a value, and the new phone number")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := storage.ParseField(args[0])
			if err != nil {
				return err
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				if err := svc.UpdatePhone(ctx, field, args[1], args[2]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(deps.out, "Updated phone for %s %q\n", field, args[1])
				return err
			})
		},
	}
}

func newRemoveCommand(deps commandDeps) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <name|email> <value>",
		Short: "Delete matching contacts",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageErrorf("rm requires a query field (name or email) and a value")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := storage.ParseField(args[0])
			if err != nil {
				return err
			}
			if !yes {
				confirmed, err := confirm(deps, fmt.Sprintf("Are you sure you want to delete contact with %s '%s'? (y/n): ", field, args[1]))
				if err != nil {
					return err
				}
				if !confirmed {
					_, err := fmt.Fprintln(deps.out, "Deletion cancelled")
					return err
				}
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				if err := svc.Delete(ctx, field, args[1]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(deps.out, "Deleted contact with %s %q\n", field, args[1])
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newImportCommand(deps commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import contacts from a JSON file",
		Long:  `Import contacts from a JSON document of the form {"contacts": [{"name","email","phone"}, ...]}. Duplicate and malformed records are skipped.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErrorf("import accepts at most one file argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultImportPath
			if len(args) == 1 && args[0] != "" {
				path = args[0]
			}
			return withService(cmd.Context(), deps, func(ctx context.Context, svc contactService) error {
				report, err := svc.ImportFile(ctx, path)
				if err != nil {
					return err
				}
				if deps.globals.JSON {
					return printJSON(deps.out, report)
				}
				printImportReport(deps, report)
				return nil
			})
		},
	}
}

func confirm(deps commandDeps, prompt string) (bool, error) {
	if _, err := fmt.Fprint(deps.out, prompt); err != nil {
		return false, err
	}
	reader := bufio.NewReader(deps.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	return strings.EqualFold(strings.TrimSpace(line), "y"), nil
}
