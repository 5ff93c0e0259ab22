package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/store"
)

// Writes a demo dataset straight through a persistence adapter. The API
// server picks it up on next start instead of falling back to its
// built-in seed.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	dataDir := flag.String("data-dir", "./data", "directory for the file adapter")
	patients := flag.Int("patients", 50, "number of demo patients")
	queueLen := flag.Int("queue", 10, "number of walk-in queue entries for today")
	flag.Parse()

	adapter, err := persistence.NewFileAdapter(*dataDir)
	if err != nil {
		log.Fatalf("open data dir: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())
	ctx := context.Background()

	demoPatients := buildPatients(*patients)
	if err := save(ctx, adapter, store.KeyPatients, demoPatients); err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	log.Printf("patients seeded: %d", len(demoPatients))

	queue := buildQueue(*queueLen, demoPatients)
	if err := save(ctx, adapter, store.KeyQueue, queue); err != nil {
		log.Fatalf("seed queue: %v", err)
	}
	log.Printf("queue entries seeded: %d", len(queue))

	log.Println("seed complete")
}

func save(ctx context.Context, adapter persistence.Adapter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return adapter.Save(ctx, key, data)
}

func buildPatients(count int) []model.Patient {
	genders := []string{"Laki-laki", "Perempuan"}
	bloodTypes := []string{"A", "B", "AB", "O"}

	now := time.Now()
	out := make([]model.Patient, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, model.Patient{
			ID:                  uuid.New(),
			Name:                gofakeit.Name(),
			Age:                 gofakeit.Number(1, 85),
			Gender:              genders[gofakeit.Number(0, len(genders)-1)],
			Phone:               fmt.Sprintf("0812%08d", gofakeit.Number(0, 99999999)),
			Email:               gofakeit.Email(),
			Address:             gofakeit.Street(),
			BloodType:           bloodTypes[gofakeit.Number(0, len(bloodTypes)-1)],
			MedicalRecordNumber: fmt.Sprintf("MR-%d-%03d", now.Year(), i+1),
			RegistrationDate:    now,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
	}
	return out
}

func buildQueue(count int, patients []model.Patient) []model.QueueEntry {
	now := time.Now()
	today := now.Format("2006-01-02")

	out := make([]model.QueueEntry, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		if len(patients) > 0 && gofakeit.Bool() {
			name = patients[gofakeit.Number(0, len(patients)-1)].Name
		}
		out = append(out, model.QueueEntry{
			ID:          uuid.New(),
			Number:      i + 1,
			Date:        today,
			PatientName: name,
			Status:      model.QueueStatusWaiting,
			CreatedAt:   now,
		})
	}
	return out
}
