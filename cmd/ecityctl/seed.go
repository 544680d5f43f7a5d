package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ecity-api/internal/database"
	"ecity-api/internal/dto"
	"ecity-api/internal/repository"
	"ecity-api/internal/service"
)

var seedFile string

var defaultDepartments = []dto.DepartmentRequest{
	{Name: "Public Works", Description: "Roads, footpaths and municipal buildings"},
	{Name: "Sanitation", Description: "Waste collection and street cleaning"},
	{Name: "Electricity", Description: "Street lighting and power lines"},
	{Name: "Water Supply", Description: "Water mains, leaks and drainage"},
}

var seedCmd = &cobra.Command{
	Use:   "seed-departments",
	Short: "Create the municipal departments that do not exist yet",
	Long: `Create departments by name, skipping names that already exist.

Without --file a built-in list is used. The file is a YAML list:

  - name: Public Works
    head: Chief Engineer
    email: works@city.gov`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		departments := defaultDepartments
		if seedFile != "" {
			loaded, err := loadDepartments(seedFile)
			if err != nil {
				return err
			}
			departments = loaded
		}

		logger := newLogger()
		defer logger.Sync()

		db, err := openDB(logger)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			return err
		}

		svc := service.NewDepartmentService(repository.NewDepartmentRepository(db), logger)
		created, err := svc.SeedDepartments(cmd.Context(), departments)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d of %d departments\n", created, len(departments))
		return nil
	},
}

func loadDepartments(path string) ([]dto.DepartmentRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var departments []dto.DepartmentRequest
	if err := yaml.Unmarshal(data, &departments); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return departments, nil
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML file listing departments")
	rootCmd.AddCommand(seedCmd)
}
