package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"invoicesync/internal/config"
	"invoicesync/internal/logger"
	"invoicesync/pkg/models"
)

var syncCmd = &cobra.Command{
	Use:   "sync [order-id]",
	Short: "Create draft invoices for marketplace orders",
	Long: `Sync fetches orders from the Dokan marketplace and books each one as a
draft invoice in Rompslomp.

Without arguments every order currently in processing status is synced,
newest first. With an order id only that order is synced. A failed order
never aborts the rest of a batch; re-running the same order id is the
way to retry one.`,
	Example: `  # Sync all processing orders
  invoicesync sync

  # Sync one order
  invoicesync sync 12345

  # Assemble invoices without submitting anything
  invoicesync sync 12345 --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().Bool("dry-run", false, "Assemble invoices without submitting them")
}

func runSync(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("sync")

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dryRun {
		return runSyncDryRun(ctx, p, args)
	}

	if len(args) == 1 {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}

		log.Info().Int64("order_id", id).Msg("Syncing single order")

		if err := p.processor.ProcessByID(ctx, id); err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}

		fmt.Printf("Invoice created for order %d\n", id)
		return nil
	}

	summary, err := p.processor.ProcessRecent(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Summary: %d invoices created successfully, %d failed\n",
		summary.SuccessCount, summary.FailureCount)
	if len(summary.FailedOrderIDs) > 0 {
		fmt.Printf("Failed orders: %s\n", joinOrderIDs(summary.FailedOrderIDs))
	}

	return nil
}

// runSyncDryRun assembles invoices and prints them instead of submitting.
// No contact is resolved or created, so the printed invoices carry
// contact_id 0.
func runSyncDryRun(ctx context.Context, p *pipeline, args []string) error {
	var orders []models.Order

	if len(args) == 1 {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}
		order, err := p.orders.FetchOrder(ctx, id)
		if err != nil {
			return fmt.Errorf("order %d: %w", id, err)
		}
		orders = append(orders, *order)
	} else {
		fetched, err := p.orders.FetchProcessingOrders(ctx)
		if err != nil {
			return err
		}
		orders = fetched
	}

	for i := range orders {
		order := &orders[i]

		inv, err := p.assembler.Assemble(ctx, order, 0)
		if err != nil {
			fmt.Printf("order %d: would fail: %v\n", order.ID, err)
			continue
		}

		pretty, err := json.MarshalIndent(inv, "", "  ")
		if err != nil {
			return fmt.Errorf("order %d: %w", order.ID, err)
		}
		fmt.Printf("order %d:\n%s\n", order.ID, pretty)
	}

	return nil
}

func parseOrderID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q: must be numeric", raw)
	}
	return id, nil
}

func joinOrderIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
