package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
)

// Fixed seed dataset used when the adapter has no stored value for a
// collection. IDs are stable so repeated cold starts agree.
var seedTime = time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

func seedDoctors() []model.Doctor {
	return []model.Doctor{
		{
			ID:        uuid.MustParse("5f9c3d2a-1b4e-4a6f-9c8d-0e1f2a3b4c5d"),
			Name:      "dr. Ahmad Santoso, Sp.JP",
			Specialty: "Cardiology",
			Phone:     "081234567801",
			Email:     "ahmad.santoso@klinik.id",
			Schedule: []model.ScheduleEntry{
				{Day: "Senin", StartTime: "08:00", EndTime: "12:00"},
				{Day: "Rabu", StartTime: "08:00", EndTime: "12:00"},
				{Day: "Jumat", StartTime: "13:00", EndTime: "17:00"},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        uuid.MustParse("7a1b2c3d-4e5f-4a6b-8c9d-1e2f3a4b5c6d"),
			Name:      "dr. Siti Rahayu, Sp.A",
			Specialty: "Pediatrics",
			Phone:     "081234567802",
			Email:     "siti.rahayu@klinik.id",
			Schedule: []model.ScheduleEntry{
				{Day: "Selasa", StartTime: "08:00", EndTime: "14:00"},
				{Day: "Kamis", StartTime: "08:00", EndTime: "14:00"},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        uuid.MustParse("9b2c3d4e-5f6a-4b7c-9d0e-2f3a4b5c6d7e"),
			Name:      "dr. Budi Hartono",
			Specialty: "General Medicine",
			Phone:     "081234567803",
			Email:     "budi.hartono@klinik.id",
			Schedule: []model.ScheduleEntry{
				{Day: "Senin", StartTime: "08:00", EndTime: "16:00"},
				{Day: "Selasa", StartTime: "08:00", EndTime: "16:00"},
				{Day: "Rabu", StartTime: "08:00", EndTime: "16:00"},
				{Day: "Kamis", StartTime: "08:00", EndTime: "16:00"},
				{Day: "Jumat", StartTime: "08:00", EndTime: "16:00"},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        uuid.MustParse("1c3d4e5f-6a7b-4c8d-0e1f-3a4b5c6d7e8f"),
			Name:      "dr. Maya Kusuma, Sp.KK",
			Specialty: "Dermatology",
			Phone:     "081234567804",
			Email:     "maya.kusuma@klinik.id",
			Schedule: []model.ScheduleEntry{
				{Day: "Rabu", StartTime: "13:00", EndTime: "17:00"},
				{Day: "Sabtu", StartTime: "09:00", EndTime: "13:00"},
			},
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}

func seedPatients() []model.Patient {
	return []model.Patient{
		{
			ID:                  uuid.MustParse("2d4e5f6a-7b8c-4d9e-1f2a-4b5c6d7e8f9a"),
			Name:                "Andi Wijaya",
			Age:                 34,
			Gender:              "Laki-laki",
			Phone:               "081298765401",
			Email:               "andi.wijaya@mail.com",
			Address:             "Jl. Merdeka No. 12, Jakarta",
			BloodType:           "O",
			MedicalRecordNumber: "MR-2024-001",
			RegistrationDate:    seedTime,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
		{
			ID:                  uuid.MustParse("3e5f6a7b-8c9d-4e0f-2a3b-5c6d7e8f9a0b"),
			Name:                "Dewi Lestari",
			Age:                 28,
			Gender:              "Perempuan",
			Phone:               "081298765402",
			Email:               "dewi.lestari@mail.com",
			Address:             "Jl. Sudirman No. 45, Bandung",
			BloodType:           "A",
			MedicalRecordNumber: "MR-2024-002",
			RegistrationDate:    seedTime,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
		{
			ID:                  uuid.MustParse("4f6a7b8c-9d0e-4f1a-3b4c-6d7e8f9a0b1c"),
			Name:                "Rudi Hermawan",
			Age:                 52,
			Gender:              "Laki-laki",
			Phone:               "081298765403",
			Email:               "rudi.hermawan@mail.com",
			Address:             "Jl. Gatot Subroto No. 8, Surabaya",
			BloodType:           "B",
			MedicalRecordNumber: "MR-2024-003",
			RegistrationDate:    seedTime,
			CreatedAt:           seedTime,
			UpdatedAt:           seedTime,
		},
	}
}

func seedNurses() []model.Nurse {
	return []model.Nurse{
		{
			ID:        uuid.MustParse("6a7b8c9d-0e1f-4a2b-4c5d-7e8f9a0b1c2d"),
			Name:      "Ns. Rina Amelia",
			Phone:     "081234567901",
			Email:     "rina.amelia@klinik.id",
			Shift:     "Pagi",
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        uuid.MustParse("7b8c9d0e-1f2a-4b3c-5d6e-8f9a0b1c2d3e"),
			Name:      "Ns. Joko Prasetyo",
			Phone:     "081234567902",
			Email:     "joko.prasetyo@klinik.id",
			Shift:     "Malam",
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}

func seedRooms() []model.Room {
	return []model.Room{
		{
			ID:        uuid.MustParse("8c9d0e1f-2a3b-4c4d-6e7f-9a0b1c2d3e4f"),
			Name:      "Ruang Mawar",
			Type:      "Rawat Inap",
			Capacity:  2,
			Floor:     "1",
			Status:    model.RoomStatusAvailable,
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        uuid.MustParse("9d0e1f2a-3b4c-4d5e-7f8a-0b1c2d3e4f5a"),
			Name:      "Ruang Melati",
			Type:      "Rawat Inap",
			Capacity:  4,
			Floor:     "2",
			Status:    model.RoomStatusAvailable,
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
		{
			ID:        uuid.MustParse("0e1f2a3b-4c5d-4e6f-8a9b-1c2d3e4f5a6b"),
			Name:      "Ruang Anggrek",
			Type:      "ICU",
			Capacity:  1,
			Floor:     "2",
			Status:    model.RoomStatusMaintenance,
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		},
	}
}
