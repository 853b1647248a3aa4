package main

import (
	"flag"
	"fmt"
	"os"

	"healy-academy/app/config"
	"healy-academy/app/database"
	"healy-academy/app/models"
)

// Bootstraps the first admin account so the web login is usable on a fresh
// database.
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_admin -email <email> -password <password>")
		os.Exit(1)
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		os.Exit(1)
	}
	defer db.Close()

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	}

	if err := database.CreateCoach(db, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	if err := database.AssignUserRole(db, user.ID, "admin"); err != nil {
		fmt.Printf("Error assigning admin role: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin created: %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
}
