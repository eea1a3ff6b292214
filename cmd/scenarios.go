package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fincast/internal/cli"
	"github.com/theirongolddev/fincast/internal/config"
	"github.com/theirongolddev/fincast/internal/scenario"
	"github.com/theirongolddev/fincast/internal/store"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "Manage scenarios stored in the local database",
	RunE:  runScenariosList,
}

var scenariosSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Store the current scenario file under a name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScenariosSave,
}

var scenariosShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored scenario as TOML",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenariosShow,
}

func init() {
	scenariosCmd.AddCommand(scenariosSaveCmd)
	scenariosCmd.AddCommand(scenariosShowCmd)
	rootCmd.AddCommand(scenariosCmd)
}

func openStore() (*store.Store, error) {
	return store.Open(config.DataPath())
}

func runScenariosList(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	infos, err := db.ListScenarios()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("\n  No stored scenarios. Use `fincast scenarios save <name>`.")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.UpdatedAt.Format("2006-01-02 15:04")})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(cli.Table{
		Title:   "Stored scenarios",
		Headers: []string{"Name", "Updated"},
		Rows:    rows,
	}))
	return nil
}

func runScenariosSave(_ *cobra.Command, args []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	name := sc.Name
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return fmt.Errorf("scenario has no name: pass one as an argument")
	}

	body, err := scenario.Marshal(sc)
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveScenario(name, body); err != nil {
		return err
	}
	fmt.Printf("  Saved scenario %q.\n", name)
	return nil
}

func runScenariosShow(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	body, err := db.GetScenario(args[0])
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(body)
	return err
}
