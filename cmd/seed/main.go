// Seeds demo accounts, vehicles, checklist templates, trips, alerts and
// maintenance tickets so the dashboards have something to show.
package main

import (
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"zoumai/internal/config"
	"zoumai/internal/models"
)

func main() {
	config.InitDB()
	db := config.DB

	log.Println("🌱 Seeding database...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash seed password: %v", err)
	}

	manager := upsertUser(db, "manager@zoumai.com", "Jean Dupont", string(hash), models.RoleManager)
	driver1 := upsertUser(db, "driver1@zoumai.com", "Pierre Martin", string(hash), models.RoleDriver)
	driver2 := upsertUser(db, "driver2@zoumai.com", "Marie Dubois", string(hash), models.RoleDriver)

	vehicle1 := upsertVehicle(db, "AB-123-CD", "Renault Master", 2022, models.VehicleAvailable, 48.8566, 2.3522)
	vehicle2 := upsertVehicle(db, "EF-456-GH", "Mercedes Sprinter", 2023, models.VehicleInUse, 48.8606, 2.3376)
	vehicle3 := upsertVehicle(db, "IJ-789-KL", "Ford Transit", 2021, models.VehicleMaintenance, 48.8738, 2.2950)

	templates := seedTemplates(db)

	trip1 := models.Trip{
		StartPoint: "Paris, France",
		EndPoint:   "Lyon, France",
		Status:     models.TripPlanned,
		DriverID:   driver1.ID,
		VehicleID:  vehicle1.ID,
	}
	if err := db.Create(&trip1).Error; err != nil {
		log.Fatalf("could not create trip: %v", err)
	}

	now := time.Now()
	trip2 := models.Trip{
		StartPoint: "Marseille, France",
		EndPoint:   "Nice, France",
		Status:     models.TripInProgress,
		StartTime:  &now,
		DriverID:   driver2.ID,
		VehicleID:  vehicle2.ID,
	}
	if err := db.Create(&trip2).Error; err != nil {
		log.Fatalf("could not create trip: %v", err)
	}

	for _, template := range templates {
		db.Create(&models.TripChecklistItem{TripID: trip1.ID, TemplateID: template.ID, Checked: false})
		db.Create(&models.TripChecklistItem{TripID: trip2.ID, TemplateID: template.ID, Checked: true})
	}

	db.Create(&models.Alert{
		VehicleID: vehicle2.ID,
		Type:      models.AlertFuelLow,
		Message:   "Niveau de carburant faible",
		Severity:  models.SeverityMedium,
	})
	db.Create(&models.Alert{
		VehicleID: vehicle1.ID,
		Type:      models.AlertMaintenance,
		Message:   "Révision programmée dans 2 jours",
		Severity:  models.SeverityLow,
	})
	seedRandomAlerts(db, []models.Vehicle{vehicle1, vehicle2, vehicle3})

	inTwoDays := now.Add(48 * time.Hour)
	db.Create(&models.MaintenanceTicket{
		Title:        "Révision 10 000 km",
		Description:  "Révision complète du véhicule",
		Status:       models.TicketPending,
		Priority:     models.SeverityMedium,
		ScheduledAt:  &inTwoDays,
		VehicleID:    vehicle1.ID,
		AssignedToID: manager.ID,
	})
	cost := 250.0
	db.Create(&models.MaintenanceTicket{
		Title:        "Réparation freins",
		Description:  "Remplacement des plaquettes de frein avant",
		Status:       models.TicketInProgress,
		Priority:     models.SeverityHigh,
		Cost:         &cost,
		VehicleID:    vehicle3.ID,
		AssignedToID: manager.ID,
	})

	log.Println("✅ Database seeded successfully!")
	log.Println("👤 Manager: manager@zoumai.com / password123")
	log.Println("🚗 Driver 1: driver1@zoumai.com / password123")
	log.Println("🚗 Driver 2: driver2@zoumai.com / password123")
}

func upsertUser(db *gorm.DB, email, name, hash, role string) models.User {
	user := models.User{Email: email, Name: name, Password: hash, Role: role}
	if err := db.Where(models.User{Email: email}).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("could not seed user %s: %v", email, err)
	}
	return user
}

func upsertVehicle(db *gorm.DB, plate, model string, year int, status string, lat, lng float64) models.Vehicle {
	now := time.Now()
	vehicle := models.Vehicle{
		PlateNumber:  plate,
		VehicleModel: model,
		Year:         year,
		Status:       status,
		LastLat:      &lat,
		LastLng:      &lng,
		LastUpdate:   &now,
	}
	if err := db.Where(models.Vehicle{PlateNumber: plate}).FirstOrCreate(&vehicle).Error; err != nil {
		log.Fatalf("could not seed vehicle %s: %v", plate, err)
	}
	return vehicle
}

func seedTemplates(db *gorm.DB) []models.ChecklistItemTemplate {
	seeds := []models.ChecklistItemTemplate{
		{Name: "Vérification des pneus", Description: "Contrôler la pression et l'état des pneus", Required: true, DisplayOrder: 1},
		{Name: "Niveau de carburant", Description: "Vérifier le niveau de carburant", Required: true, DisplayOrder: 2},
		{Name: "Éclairage", Description: "Tester tous les feux (phares, clignotants, feux de stop)", Required: true, DisplayOrder: 3},
		{Name: "Documents", Description: "Vérifier la présence des papiers du véhicule", Required: true, DisplayOrder: 4},
	}

	templates := make([]models.ChecklistItemTemplate, 0, len(seeds))
	for _, seed := range seeds {
		template := seed
		if err := db.Where(models.ChecklistItemTemplate{Name: seed.Name}).FirstOrCreate(&template).Error; err != nil {
			log.Fatalf("could not seed checklist template: %v", err)
		}
		templates = append(templates, template)
	}
	return templates
}

// seedRandomAlerts sprinkles 0-2 sample alerts per vehicle.
func seedRandomAlerts(db *gorm.DB, vehicles []models.Vehicle) {
	kinds := []struct {
		alertType string
		messages  []string
		severity  string
	}{
		{models.AlertMaintenance, []string{"Révision programmée dans 3 jours", "Contrôle technique à effectuer", "Changement d'huile recommandé"}, models.SeverityLow},
		{models.AlertEngineWarning, []string{"Voyant moteur allumé", "Température moteur élevée", "Pression d'huile faible"}, models.SeverityHigh},
		{models.AlertTirePressure, []string{"Pression des pneus avant faible", "Pression des pneus arrière faible", "Contrôle des pneus recommandé"}, models.SeverityMedium},
	}

	for _, vehicle := range vehicles {
		for i := 0; i < rand.Intn(3); i++ {
			kind := kinds[rand.Intn(len(kinds))]
			db.Create(&models.Alert{
				VehicleID: vehicle.ID,
				Type:      kind.alertType,
				Message:   kind.messages[rand.Intn(len(kind.messages))],
				Severity:  kind.severity,
			})
		}
	}
}
