package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ascend-app/ascend/internal/app"
	"github.com/ascend-app/ascend/internal/domain"
)

func init() {
	shopAddCmd.Flags().StringVarP(&shopAddDesc, "desc", "d", "", "Reward description")
	shopAddCmd.Flags().Int64Var(&shopAddCost, "cost", 0, "Cost in coins (required)")
	shopAddCmd.Flags().StringVar(&shopAddIcon, "icon", "", "Icon name")
	shopAddCmd.Flags().StringVar(&shopAddCategory, "category", "", "Category")
	shopAddCmd.MarkFlagRequired("cost")

	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopRedeemCmd)
	shopCmd.AddCommand(shopAddCmd)
	shopCmd.AddCommand(shopRmCmd)
	rootCmd.AddCommand(shopCmd)
}

var (
	shopAddDesc     string
	shopAddCost     int64
	shopAddIcon     string
	shopAddCategory string
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse and buy rewards with earned coins",
}

var shopListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List rewards and your balance",
	RunE:    runShopList,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy REWARD_ID",
	Short: "Buy a reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopBuy,
}

var shopRedeemCmd = &cobra.Command{
	Use:   "redeem PURCHASE_ID",
	Short: "Redeem a purchased reward",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopRedeem,
}

var shopAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a custom reward to the shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopAdd,
}

var shopRmCmd = &cobra.Command{
	Use:   "rm REWARD_ID",
	Short: "Remove a reward from the shop",
	Args:  cobra.ExactArgs(1),
	RunE:  runShopRm,
}

func runShopList(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	balance, err := a.Ledger.Balance()
	if err != nil {
		return err
	}
	rewards, err := a.Shop.List()
	if err != nil {
		return err
	}

	fmt.Printf("Balance: %d coins\n\n", balance)
	if len(rewards) == 0 {
		fmt.Println("The shop is empty. Run 'ascend shop add' to stock it.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREWARD\tCOST\tBOUGHT\tUNREDEEMED")
	for _, r := range rewards {
		unredeemed := 0
		for _, p := range r.Purchases {
			if !p.Redeemed {
				unredeemed++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			shortID(r.ID), r.Title, r.Cost, len(r.Purchases), unredeemed)
	}
	return w.Flush()
}

func runShopBuy(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := resolveReward(a, args[0])
	if err != nil {
		return err
	}

	p, err := a.Shop.Purchase(r.ID, a.Now())
	if err != nil {
		return err
	}

	balance, _ := a.Ledger.Balance()
	fmt.Printf("Bought %s for %d coins (%d left)\n", r.Title, p.CostPaid, balance)
	fmt.Printf("Purchase ID: %s — redeem with 'ascend shop redeem %s'\n",
		shortID(p.ID), shortID(p.ID))
	return nil
}

func runShopRedeem(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := resolvePurchase(a, args[0])
	if err != nil {
		return err
	}

	if err := a.Shop.Redeem(id, a.Now()); err != nil {
		return err
	}

	fmt.Println("Redeemed. Enjoy it — you earned it.")
	return nil
}

func runShopAdd(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.Shop.Add(domain.Reward{
		Title:       args[0],
		Description: shopAddDesc,
		Cost:        shopAddCost,
		Icon:        shopAddIcon,
		Category:    shopAddCategory,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s to the shop for %d coins\n", r.Title, r.Cost)
	return nil
}

func runShopRm(cmd *cobra.Command, args []string) error {
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := resolveReward(a, args[0])
	if err != nil {
		return err
	}

	if err := a.Shop.Delete(r.ID); err != nil {
		return err
	}

	fmt.Printf("Removed %s from the shop\n", r.Title)
	return nil
}
