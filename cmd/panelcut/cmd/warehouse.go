package cmd

import (
	"fmt"
	"sort"

	"github.com/piwi3910/panelcut/internal/model"
	"github.com/piwi3910/panelcut/internal/project"
	"github.com/spf13/cobra"
)

var (
	itemLabel     string
	itemLength    float64
	itemWidth     float64
	itemThickness float64
	itemQuantity  int
	itemMaterial  string
	itemType      string
	itemGrain     string
)

var warehouseCmd = &cobra.Command{
	Use:     "warehouse",
	Aliases: []string{"inv"},
	Short:   "Track stock on hand",
	Long: `The warehouse records how many pieces of each stock item are on hand.
Optimize with --warehouse to draw stock from it, save the calculation, then
commit it to take the sheets used off the shelf.`,
}

var warehouseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List warehouse items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := project.LoadInventory(inventoryPath())
		if err != nil {
			return err
		}
		printInventory(cmd.OutOrStdout(), inv)
		return nil
	},
}

var warehouseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Receive pieces into the warehouse",
	Long: `Add pieces of a stock item. An item with the same label and size is topped
up; anything else becomes a new item.

Example:
  panelcut warehouse add --label "Birch ply 18" --length 2440 --width 1220 --thickness 18 --qty 6`,
	Args: cobra.NoArgs,
	RunE: runWarehouseAdd,
}

var warehouseCommitCmd = &cobra.Command{
	Use:   "commit <calculation-id>",
	Short: "Take the sheets a saved calculation uses off the shelf",
	Args:  cobra.ExactArgs(1),
	RunE:  runWarehouseCommit,
}

var warehouseImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge items from an exported warehouse file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := inventoryPath()
		inv, err := project.LoadInventory(path)
		if err != nil {
			return err
		}
		before := len(inv.Items)
		merged, err := project.ImportInventory(args[0], inv)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
		if err := project.SaveInventory(path, merged); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items\n", len(merged.Items)-before)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warehouseCmd)
	warehouseCmd.AddCommand(warehouseListCmd)
	warehouseCmd.AddCommand(warehouseAddCmd)
	warehouseCmd.AddCommand(warehouseCommitCmd)
	warehouseCmd.AddCommand(warehouseImportCmd)

	f := warehouseAddCmd.Flags()
	f.StringVar(&itemLabel, "label", "", "item label")
	f.Float64Var(&itemLength, "length", 0, "length (mm)")
	f.Float64Var(&itemWidth, "width", 0, "width (mm)")
	f.Float64Var(&itemThickness, "thickness", 0, "thickness (mm)")
	f.IntVar(&itemQuantity, "qty", 1, "pieces received")
	f.StringVar(&itemMaterial, "material", "", "material name")
	f.StringVar(&itemType, "type", "sheet", "sheet or dimensional")
	f.StringVar(&itemGrain, "grain", "none", "none, horizontal or vertical")
	_ = warehouseAddCmd.MarkFlagRequired("length")
	_ = warehouseAddCmd.MarkFlagRequired("width")
	_ = warehouseAddCmd.MarkFlagRequired("thickness")
}

func runWarehouseAdd(cmd *cobra.Command, args []string) error {
	grain, ok := model.ParseGrain(itemGrain)
	if !ok {
		return fmt.Errorf("invalid grain %q", itemGrain)
	}
	mt, ok := model.ParseMaterialType(itemType)
	if !ok {
		return fmt.Errorf("invalid material type %q", itemType)
	}
	label := itemLabel
	if label == "" {
		label = fmt.Sprintf("%s %.0fx%.0fx%.0f", itemMaterial, itemLength, itemWidth, itemThickness)
	}

	item := model.NewInventoryItem(label, itemLength, itemWidth, itemThickness, itemMaterial, itemQuantity)
	item.MaterialType = mt
	item.Grain = grain

	path := inventoryPath()
	inv, err := project.LoadInventory(path)
	if err != nil {
		return err
	}
	got, err := project.AddStock(&inv, item)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d on hand\n", got.ID, got.Label, got.OnHand)
	return project.SaveInventory(path, inv)
}

func runWarehouseCommit(cmd *cobra.Command, args []string) error {
	invPath, calcPath := inventoryPath(), calculationsPath()
	inv, err := project.LoadInventory(invPath)
	if err != nil {
		return err
	}
	store, err := project.LoadCalculations(calcPath)
	if err != nil {
		return err
	}

	used, err := project.CommitCalculation(&inv, &store, args[0])
	if err != nil {
		return err
	}
	// The committed mark is saved first. If the inventory save then fails,
	// a retry is refused instead of decrementing twice.
	if err := project.SaveCalculations(calcPath, store); err != nil {
		return err
	}
	if err := project.SaveInventory(invPath, inv); err != nil {
		return fmt.Errorf("calculation %s marked committed but inventory not saved: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if len(used) == 0 {
		fmt.Fprintln(out, "No warehouse stock was used; marked committed.")
		return nil
	}
	ids := make([]string, 0, len(used))
	for id := range used {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		it := inv.FindByID(id)
		fmt.Fprintf(out, "%s %s: -%d, %d left\n", id, it.Label, used[id], it.OnHand)
	}
	return nil
}
