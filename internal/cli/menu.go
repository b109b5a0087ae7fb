package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rolodex-cli/rolodex/internal/app"
	"github.com/rolodex-cli/rolodex/internal/storage"
)

const defaultImportPath = "contact_list.json"

var menuTitleStyle = lipgloss.NewStyle().Bold(true)

// runMenu drives the interactive numbered menu. Recoverable failures are
// printed and the loop continues; only I/O errors on the terminal itself
// end the session early.
func runMenu(ctx context.Context, deps commandDeps, svc contactService) error {
	reader := bufio.NewReader(deps.in)

	for {
		printMenu(deps.out)
		choice, err := readLine(reader)
		if err != nil {
			// EOF on stdin ends the session like option 7.
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = menuImport(ctx, deps, svc, reader)
		case "2":
			err = menuAdd(ctx, deps, svc, reader)
		case "3":
			err = menuList(ctx, deps, svc)
		case "4":
			err = menuFind(ctx, deps, svc, reader)
		case "5":
			err = menuUpdatePhone(ctx, deps, svc, reader)
		case "6":
			err = menuDelete(ctx, deps, svc, reader)
		case "7":
			fmt.Fprintln(deps.out, "Exiting. Goodbye!")
			return nil
		default:
			fmt.Fprintln(deps.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, menuTitleStyle.Render("==== Contact Manager ===="))
	fmt.Fprintln(out, "1. Import contacts from JSON file")
	fmt.Fprintln(out, "2. Add a new contact")
	fmt.Fprintln(out, "3. Show all contacts")
	fmt.Fprintln(out, "4. Find a contact")
	fmt.Fprintln(out, "5. Update phone number")
	fmt.Fprintln(out, "6. Delete a contact")
	fmt.Fprintln(out, "7. Exit")
	fmt.Fprint(out, "Enter your choice (1-7): ")
}

func menuImport(ctx context.Context, deps commandDeps, svc contactService, reader *bufio.Reader) error {
	path, err := prompt(deps.out, reader, fmt.Sprintf("Enter JSON file path (default: %s): ", defaultImportPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = defaultImportPath
	}

	report, err := svc.ImportFile(ctx, path)
	if err != nil {
		fmt.Fprintf(deps.out, "Could not import contacts: %v\n", err)
		return nil
	}
	printImportReport(deps, report)
	return nil
}

func menuAdd(ctx context.Context, deps commandDeps, svc contactService, reader *bufio.Reader) error {
	name, err := prompt(deps.out, reader, "Enter contact name: ")
	if err != nil {
		return err
	}
	email, err := prompt(deps.out, reader, "Enter contact email: ")
	if err != nil {
		return err
	}
	phone, err := prompt(deps.out, reader, "Enter contact phone: ")
	if err != nil {
		return err
	}

	if _, err := svc.Add(ctx, name, email, phone); err != nil {
		fmt.Fprintf(deps.out, "Failed to add contact: %v\n", err)
		return nil
	}
	fmt.Fprintf(deps.out, "Contact %s added successfully\n", name)
	return nil
}

func menuList(ctx context.Context, deps commandDeps, svc contactService) error {
	contacts, err := svc.List(ctx)
	if err != nil {
		fmt.Fprintf(deps.out, "Could not list contacts: %v\n", err)
		return nil
	}
	if len(contacts) == 0 {
		fmt.Fprintln(deps.out, "No contacts found")
		return nil
	}

	fmt.Fprintln(deps.out)
	fmt.Fprintln(deps.out, menuTitleStyle.Render("==== All Contacts ===="))
	for i, c := range contacts {
		fmt.Fprintf(deps.out, "%d. Name: %s\n", i+1, c.Name)
		fmt.Fprintf(deps.out, "   Email: %s\n", c.Email)
		fmt.Fprintf(deps.out, "   Phone: %s\n", c.Phone)
		fmt.Fprintln(deps.out, "-------------------")
	}
	return nil
}

func menuFind(ctx context.Context, deps commandDeps, svc contactService, reader *bufio.Reader) error {
	field, value, err := promptQuery(deps, reader, "Search by (name/email): ")
	if err != nil || field == 0 {
		return err
	}

	found, findErr := svc.Find(ctx, field, value)
	if findErr != nil {
		fmt.Fprintf(deps.out, "No contact found with %s: %s\n", field, value)
		return nil
	}
	fmt.Fprintln(deps.out)
	fmt.Fprintln(deps.out, menuTitleStyle.Render("==== Contact Found ===="))
	fmt.Fprintf(deps.out, "Name: %s\n", found.Name)
	fmt.Fprintf(deps.out, "Email: %s\n", found.Email)
	fmt.Fprintf(deps.out, "Phone: %s\n", found.Phone)
	return nil
}

func menuUpdatePhone(ctx context.Context, deps commandDeps, svc contactService, reader *bufio.Reader) error {
	field, value, err := promptQuery(deps, reader, "Find contact by (name/email): ")
	if err != nil || field == 0 {
		return err
	}
	phone, err := prompt(deps.out, reader, "Enter new phone number: ")
	if err != nil {
		return err
	}

	if updateErr := svc.UpdatePhone(ctx, field, value, phone); updateErr != nil {
		fmt.Fprintf(deps.out, "Failed to update phone number: %v\n", updateErr)
		return nil
	}
	fmt.Fprintf(deps.out, "Phone number updated successfully for %s\n", value)
	return nil
}

func menuDelete(ctx context.Context, deps commandDeps, svc contactService, reader *bufio.Reader) error {
	field, value, err := promptQuery(deps, reader, "Delete contact by (name/email): ")
	if err != nil || field == 0 {
		return err
	}

	answer, err := prompt(deps.out, reader, fmt.Sprintf("Are you sure you want to delete contact with %s '%s'? (y/n): ", field, value))
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(deps.out, "Deletion cancelled")
		return nil
	}

	if deleteErr := svc.Delete(ctx, field, value); deleteErr != nil {
		fmt.Fprintf(deps.out, "Failed to delete contact: %v\n", deleteErr)
		return nil
	}
	fmt.Fprintf(deps.out, "Contact with %s '%s' deleted successfully\n", field, value)
	return nil
}

// promptQuery reads the query field and value for find/update/delete. An
// unknown field prints the guidance message and returns a zero Field so
// the caller drops back to the menu.
func promptQuery(deps commandDeps, reader *bufio.Reader, label string) (storage.Field, string, error) {
	raw, err := prompt(deps.out, reader, label)
	if err != nil {
		return 0, "", err
	}
	field, parseErr := storage.ParseField(raw)
	if parseErr != nil {
		fmt.Fprintln(deps.out, "Invalid option. Please choose 'name' or 'email'")
		return 0, "", nil
	}

	value, err := prompt(deps.out, reader, fmt.Sprintf("Enter %s: ", field))
	if err != nil {
		return 0, "", err
	}
	return field, value, nil
}

func printImportReport(deps commandDeps, report app.ImportReport) {
	fmt.Fprintf(deps.out, "Found %d contacts in file\n", report.Found)
	fmt.Fprintf(deps.out, "Imported %d contacts\n", report.Imported)
	if report.Duplicates > 0 {
		fmt.Fprintf(deps.out, "Skipped %d duplicate contacts\n", report.Duplicates)
	}
	if report.Invalid > 0 {
		fmt.Fprintf(deps.out, "Skipped %d invalid records\n", report.Invalid)
	}
	if report.Failed > 0 {
		fmt.Fprintf(deps.out, "Failed to import %d contacts\n", report.Failed)
	}
}

func prompt(out io.Writer, reader *bufio.Reader, label string) (string, error) {
	if _, err := fmt.Fprint(out, label); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}
