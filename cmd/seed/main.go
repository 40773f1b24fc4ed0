package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/quickdoc/clinic-api/internal/config"
	"github.com/quickdoc/clinic-api/internal/repository/postgres"
)

// Demo provisioning: applies the schema and fills the directory with
// specialties, practice locations, randomized doctors and two weeks of
// appointment slots. Runs outside the serving path.

var specialties = [][2]string{
	{"CAR", "Kardiologie"},
	{"DER", "Dermatologie"},
	{"ENT", "HNO"},
	{"NEU", "Neurologie"},
	{"ORT", "Orthopädie"},
	{"GYN", "Gynäkologie"},
	{"URO", "Urologie"},
	{"OPH", "Augenheilkunde"},
	{"DNT", "Zahnmedizin"},
	{"PSY", "Psychiatrie / Psychotherapie"},
	{"INT", "Innere Medizin"},
	{"PED", "Pädiatrie"},
	{"END", "Endokrinologie"},
}

var locations = [][3]string{
	{"Hamburg", "20095", "Jungfernstieg 1"},
	{"Hamburg", "22303", "Saarlandstraße 12"},
	{"Hamburg", "22767", "Kleine Freiheit 3"},
	{"Berlin", "10115", "Invalidenstraße 44"},
	{"München", "80331", "Marienplatz 8"},
	{"Köln", "50667", "Hohe Straße 21"},
	{"Frankfurt", "60311", "Zeil 112"},
	{"Stuttgart", "70173", "Königstraße 25"},
	{"Düsseldorf", "40213", "Flinger Straße 5"},
	{"Leipzig", "04109", "Markt 10"},
}

var firstNames = []string{"Alex", "Sam", "Lea", "Jonas", "Mia", "Felix", "Sara", "Luca", "Noah", "Emma", "Paul", "Sofia", "Julian", "Nina", "Tom"}
var lastNames = []string{"Meyer", "Schmidt", "Klein", "Vogel", "Becker", "Hoffmann", "König", "Schulz", "Keller", "Richter", "Peters", "Hartmann"}

const (
	doctorCount     = 40
	slotDays        = 14
	firstSlotHour   = 9
	lastSlotHour    = 16
	slotDurationMin = 20
	bookedFraction  = 0.35
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := applySchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	if err := seed(db, rng); err != nil {
		log.Fatal().Err(err).Msg("failed to seed data")
	}

	log.Info().Msg("seed complete: specialties, locations, doctors, appointment slots created")
}

func applySchema(db *sqlx.DB) error {
	schema, err := os.ReadFile("migrations/001_init.up.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

func seed(db *sqlx.DB, rng *rand.Rand) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	specialtyIDs := make([]uuid.UUID, 0, len(specialties))
	for _, s := range specialties {
		id := uuid.New()
		if _, err := tx.Exec(
			`INSERT INTO specialties (id, code, name) VALUES ($1, $2, $3) ON CONFLICT (code) DO NOTHING`,
			id, s[0], s[1],
		); err != nil {
			return fmt.Errorf("failed to insert specialty %s: %w", s[0], err)
		}
		specialtyIDs = append(specialtyIDs, id)
	}

	locationIDs := make([]uuid.UUID, 0, len(locations))
	for _, l := range locations {
		id := uuid.New()
		if _, err := tx.Exec(
			`INSERT INTO locations (id, city, zip, street) VALUES ($1, $2, $3, $4)`,
			id, l[0], l[1], l[2],
		); err != nil {
			return fmt.Errorf("failed to insert location %s: %w", l[0], err)
		}
		locationIDs = append(locationIDs, id)
	}

	for i := 0; i < doctorCount; i++ {
		doctorID := uuid.New()
		firstName := firstNames[rng.Intn(len(firstNames))]
		lastName := lastNames[rng.Intn(len(lastNames))]
		specialtyID := specialtyIDs[rng.Intn(len(specialtyIDs))]
		phone := fmt.Sprintf("+49 %d", 300000000+rng.Intn(9999999))
		email := fmt.Sprintf("%s.%s@quickdoc.example", strings.ToLower(firstName), strings.ToLower(lastName))

		if _, err := tx.Exec(
			`INSERT INTO doctors (id, first_name, last_name, specialty_id, phone, email) VALUES ($1, $2, $3, $4, $5, $6)`,
			doctorID, firstName, lastName, specialtyID, phone, email,
		); err != nil {
			return fmt.Errorf("failed to insert doctor: %w", err)
		}

		// 1 or 2 practice locations per doctor.
		locationCount := 1
		if rng.Float64() >= 0.7 {
			locationCount = 2
		}
		picked := map[uuid.UUID]bool{}
		for len(picked) < locationCount {
			picked[locationIDs[rng.Intn(len(locationIDs))]] = true
		}
		for locationID := range picked {
			if _, err := tx.Exec(
				`INSERT INTO doctor_locations (doctor_id, location_id) VALUES ($1, $2)`,
				doctorID, locationID,
			); err != nil {
				return fmt.Errorf("failed to link doctor location: %w", err)
			}
		}

		if err := seedSlots(tx, rng, doctorID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedSlots creates hourly weekday slots for the next two weeks, with
// roughly a third already booked so the demo directory looks lived-in.
func seedSlots(tx *sqlx.Tx, rng *rand.Rand, doctorID uuid.UUID) error {
	now := time.Now()
	for dayOffset := 0; dayOffset < slotDays; dayOffset++ {
		day := now.AddDate(0, 0, dayOffset)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for hour := firstSlotHour; hour <= lastSlotHour; hour++ {
			start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			booked := rng.Float64() < bookedFraction
			if _, err := tx.Exec(
				`INSERT INTO appointment_slots (id, doctor_id, start_time, duration_min, booked) VALUES ($1, $2, $3, $4, $5)`,
				uuid.New(), doctorID, start, slotDurationMin, booked,
			); err != nil {
				return fmt.Errorf("failed to insert slot: %w", err)
			}
		}
	}
	return nil
}
