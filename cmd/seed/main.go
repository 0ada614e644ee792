package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"workspace/internal/config"
	"workspace/internal/database"
	"workspace/internal/domain"
	"workspace/internal/modules/credits"
	"workspace/internal/modules/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.Organization{},
		&domain.User{},
		&domain.Location{},
		&domain.RoomType{},
		&domain.RoomInstance{},
		&domain.Booking{},
		&domain.GuestInvitation{},
		&credits.CreditTransaction{},
		&notification.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM credit_transactions")
	db.Exec("DELETE FROM guest_invitations")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM room_instances")
	db.Exec("DELETE FROM room_types")
	db.Exec("DELETE FROM locations")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM organizations")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@workspace.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleSuperAdmin,
		Name:         "Platform Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@workspace.local / admin123")

	org := domain.Organization{
		Name:        "Acme Consulting",
		CreditsPool: 500,
	}
	db.Create(&org)

	orgAdminHash, _ := bcrypt.GenerateFromPassword([]byte("orgadmin123"), bcrypt.DefaultCost)
	orgAdmin := domain.User{
		Email:          "lead@acme.example",
		PasswordHash:   string(orgAdminHash),
		Role:           domain.RoleOrgAdmin,
		Name:           "Acme Lead",
		OrganizationID: &org.ID,
	}
	db.Create(&orgAdmin)

	memberEmails := []string{"nora@acme.example", "tomas@acme.example"}
	for i, email := range memberEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
		member := domain.User{
			Email:          email,
			PasswordHash:   string(hash),
			Role:           domain.RoleOrgUser,
			Name:           fmt.Sprintf("Acme Member %d", i+1),
			OrganizationID: &org.ID,
		}
		db.Create(&member)
	}
	log.Println("Organization members created: lead@acme.example / orgadmin123, *@acme.example / member123")

	individualEmails := []string{"maya@mail.example", "ravi@mail.example", "lena@mail.example"}
	for i, email := range individualEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := domain.User{
			Email:             email,
			PasswordHash:      string(hash),
			Role:              domain.RoleIndividualUser,
			Name:              fmt.Sprintf("Member %d", i+1),
			IndividualCredits: 100,
		}
		db.Create(&u)
	}
	log.Println("Individual users created: *@mail.example / user123, 100 credits each")

	// ================== CATALOG ==================
	log.Println("Creating locations and room types...")

	downtown := domain.Location{Name: "Downtown Hub", Address: "12 Main Street"}
	riverside := domain.Location{Name: "Riverside Campus", Address: "4 Quay Road"}
	db.Create(&downtown)
	db.Create(&riverside)

	types := []domain.RoomType{
		{Name: "Focus Booth", Capacity: 1, CreditsPerBooking: 5, LocationID: downtown.ID},
		{Name: "Meeting Room", Capacity: 6, CreditsPerBooking: 15, LocationID: downtown.ID},
		{Name: "Conference Hall", Capacity: 20, CreditsPerBooking: 40, LocationID: riverside.ID},
	}
	for i := range types {
		db.Create(&types[i])
	}

	instanceCounts := []int{4, 3, 1}
	for i, rt := range types {
		for n := 1; n <= instanceCounts[i]; n++ {
			db.Create(&domain.RoomInstance{
				Name:       fmt.Sprintf("%s %d", rt.Name, n),
				RoomTypeID: rt.ID,
				IsActive:   true,
			})
		}
	}

	log.Println("Seed complete.")
}
