package generator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteDataset serializes the dataset into allUsers.json and userData.csv
// under the provided directory, matching the production export formats: a
// pretty-printed JSON array and a BOM-prefixed CSV.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeUsersJSON(filepath.Join(dir, "allUsers.json"), dataset.Users); err != nil {
		return err
	}
	if err := writeRegistrationsCSV(filepath.Join(dir, "userData.csv"), dataset.Registrations); err != nil {
		return err
	}
	return nil
}

func writeUsersJSON(path string, users []UserRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeRegistrationsCSV(path string, rows []RegistrationRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"id", "hostRegister", "name", "phone"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{row.ID, row.RegisteredAt, row.Name, row.Phone}); err != nil {
			return fmt.Errorf("write csv row %s: %w", row.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv %s: %w", path, err)
	}
	return nil
}
