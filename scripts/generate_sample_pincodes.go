package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generateSamplePincodes creates a sample serviceable-pincode file for local
// development. The pincodes cover the metro areas the nursery ships to.
func main() {
	dataDir := "data/pincodes"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	pincodes := []string{
		// Delhi NCR
		"110001", "110002", "110003", "122001", "201301",
		// Mumbai
		"400001", "400002", "400051", "400601",
		// Bengaluru
		"560001", "560002", "560034", "560066", "560103",
		// Chennai
		"600001", "600002", "600040",
		// Hyderabad
		"500001", "500032", "500081",
		// Kolkata
		"700001", "700016",
		// Pune
		"411001", "411014", "411045",
	}

	filePath := filepath.Join(dataDir, "serviceable.gz")
	if err := createPincodeFile(filePath, pincodes); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d pincodes\n", filePath, len(pincodes))
}

func createPincodeFile(filePath string, pincodes []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, pincode := range pincodes {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", pincode); err != nil {
			return fmt.Errorf("failed to write pincode: %w", err)
		}
	}

	return nil
}
