package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/the247care/clinic-api/internal/config"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository/postgres"
	doctorservice "github.com/the247care/clinic-api/internal/service/doctor"
	enquiryservice "github.com/the247care/clinic-api/internal/service/enquiry"
	"github.com/the247care/clinic-api/pkg/logger"
)

// Seeds demo doctors and enquiries through the service layer so the patient
// directory and back-reference lists come out consistent.
func main() {
	doctorCount := flag.Int("doctors", 10, "number of doctors to create")
	enquiryCount := flag.Int("enquiries", 50, "number of enquiries to create")
	flag.Parse()

	log := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	enquiryRepo := postgres.NewEnquiryRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	doctorSvc := doctorservice.NewService(doctorRepo, log)
	enquirySvc := enquiryservice.NewService(enquiryRepo, doctorRepo, patientRepo, log, nil)

	ctx := context.Background()

	doctors := make([]*model.Doctor, 0, *doctorCount)
	specializations := []string{
		"General Medicine", "Cardiology", "Pulmonology",
		"Orthopedics", "Critical Care", "Pediatrics",
	}
	for i := 0; i < *doctorCount; i++ {
		doc, err := doctorSvc.Create(ctx, &model.CreateDoctorRequest{
			Name:           gofakeit.Name(),
			Specialization: specializations[rand.Intn(len(specializations))],
			Mobile:         tenDigitMobile(),
			EmployeeID:     fmt.Sprintf("EMP%04d", i+1),
			Gender:         randomGender(),
		})
		if err != nil {
			log.Fatal(err, "failed to seed doctor")
		}
		doctors = append(doctors, doc)
	}
	log.Info("seeded doctors", "count", len(doctors))

	for i := 0; i < *enquiryCount; i++ {
		enq, err := enquirySvc.Create(ctx, &model.CreateEnquiryRequest{
			PatientName:   gofakeit.Name(),
			PatientAge:    gofakeit.Number(1, 99),
			PatientMob:    tenDigitMobile(),
			PatientGender: string(randomGender()),
			Message:       gofakeit.Sentence(8),
			Service:       model.ClinicServices[rand.Intn(len(model.ClinicServices))],
		})
		if err != nil {
			log.Fatal(err, "failed to seed enquiry")
		}

		// Assign roughly half of them to a random doctor.
		if rand.Intn(2) == 0 {
			assignee := doctors[rand.Intn(len(doctors))].ID.String()
			_, err = enquirySvc.Update(ctx, enq.ID, &model.UpdateEnquiryRequest{
				Assignee: model.NullableString{Set: true, Value: assignee},
			})
			if err != nil {
				log.Fatal(err, "failed to assign seeded enquiry")
			}
		}
	}
	log.Info("seeded enquiries", "count", *enquiryCount)
}

func tenDigitMobile() string {
	return fmt.Sprintf("9%09d", rand.Intn(1_000_000_000))
}

func randomGender() model.Gender {
	if rand.Intn(2) == 0 {
		return model.GenderMale
	}
	return model.GenderFemale
}
