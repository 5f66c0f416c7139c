package handlers

import (
	"context"
	"fmt"

	"pizzastore/console"
	"pizzastore/repository"
	"pizzastore/session"
	"pizzastore/validation"
)

// ViewMenu is the menu browser: filters and sorts until the caller goes back
func (h *Handler) ViewMenu(ctx context.Context, sess *session.Session) error {
	for {
		console.Menu(h.out, "===== MENU OPTIONS =====",
			"1. View all menu items",
			"2. Filter by category (entree, drinks, sides)",
			"3. Filter by price range",
			"4. Sort by price (Low to High)",
			"5. Sort by price (High to Low)",
			"6. Go back",
		)
		choice, err := h.in.Choice("Choose an option: ")
		if err != nil {
			return err
		}

		var q repository.MenuQuery
		switch choice {
		case 1:
		case 2:
			raw, err := h.in.Line("Enter food type (entree, drinks, sides): ")
			if err != nil {
				return err
			}
			itemType, err := validation.ParseItemType(raw)
			if err != nil {
				fmt.Fprintln(h.out, "Invalid type! Please enter 'entree', 'drinks', or 'sides'.")
				continue
			}
			q.Type = itemType
		case 3:
			raw, err := h.in.Line("Enter maximum price: ")
			if err != nil {
				return err
			}
			limit, err := validation.ParsePrice(raw)
			if err != nil {
				h.Report(err)
				continue
			}
			q.MaxPrice = &limit
		case 4:
			q.Sort = repository.SortPriceAsc
		case 5:
			q.Sort = repository.SortPriceDesc
		case 6:
			fmt.Fprintln(h.out, "\nReturning to main menu...")
			return nil
		default:
			fmt.Fprintln(h.out, "Invalid choice! Please try again.")
			continue
		}

		rows, err := h.catalog.Menu(ctx, sess, q)
		if err != nil {
			return err
		}
		h.printMenu(rows)
	}
}

func (h *Handler) printMenu(rows []repository.MenuRow) {
	if len(rows) == 0 {
		fmt.Fprintln(h.out, "\nNo items found.")
		return
	}
	fmt.Fprintln(h.out, "\n===== MENU ITEMS =====")
	fmt.Fprintf(h.out, "%-20s %-10s %-10s %-30s\n", "Item Name", "Price", "Type", "Description")
	fmt.Fprintln(h.out, "-------------------------------------------------------------")
	for _, r := range rows {
		fmt.Fprintf(h.out, "%-20s $%-9s %-10s %-30s\n", r.Name, r.Price.StringFixed(2), r.Type, r.Description)
	}
}
