//go:build ignore

// One-off backfill: recompute location_warning_flag for jobs that were
// checked in before the flag existed. Compares the stored check-in capture
// against the property coordinates and flags captures more than 100 meters
// away.
//
// Usage:
//
//	go run scripts/backfill_location_warnings.go [-db path] [-dry-run]
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type checkedInJob struct {
	ID          string
	CheckInLat  float64
	CheckInLng  float64
	PropertyLat float64
	PropertyLng float64
	Flagged     bool
}

func main() {
	var dbPath string
	var dryRun bool
	flag.StringVar(&dbPath, "db", "", "database path (default ~/.fieldops/fieldops.db)")
	flag.BoolVar(&dryRun, "dry-run", false, "report without writing")
	flag.Parse()

	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get home dir: %v\n", err)
			os.Exit(1)
		}
		dbPath = filepath.Join(home, ".fieldops", "fieldops.db")
	}

	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	rows, err := database.Query(`
		SELECT j.id, j.check_in_lat, j.check_in_lng, p.latitude, p.longitude, j.location_warning_flag
		FROM jobs j
		JOIN properties p ON p.id = j.property_id
		WHERE j.check_in_lat IS NOT NULL
		  AND j.check_in_lng IS NOT NULL
		  AND p.latitude IS NOT NULL
		  AND p.longitude IS NOT NULL`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "query failed: %v\n", err)
		os.Exit(1)
	}
	defer rows.Close()

	var jobs []checkedInJob
	for rows.Next() {
		var j checkedInJob
		if err := rows.Scan(&j.ID, &j.CheckInLat, &j.CheckInLng, &j.PropertyLat, &j.PropertyLng, &j.Flagged); err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			os.Exit(1)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "rows failed: %v\n", err)
		os.Exit(1)
	}

	updated := 0
	for _, j := range jobs {
		distance := haversineKm(j.CheckInLat, j.CheckInLng, j.PropertyLat, j.PropertyLng)
		shouldFlag := distance > 0.1
		if shouldFlag == j.Flagged {
			continue
		}

		fmt.Printf("job %s: %.2f km from property, flag %t -> %t\n", j.ID, distance, j.Flagged, shouldFlag)
		if dryRun {
			updated++
			continue
		}

		if _, err := database.Exec("UPDATE jobs SET location_warning_flag = ? WHERE id = ?", shouldFlag, j.ID); err != nil {
			fmt.Fprintf(os.Stderr, "update failed for %s: %v\n", j.ID, err)
			os.Exit(1)
		}
		updated++
	}

	if dryRun {
		fmt.Printf("dry run: %d of %d jobs would change\n", updated, len(jobs))
	} else {
		fmt.Printf("updated %d of %d jobs\n", updated, len(jobs))
	}
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
