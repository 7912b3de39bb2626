package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Roshanpeter07/GLIMCarPool/internal/models"
	"github.com/Roshanpeter07/GLIMCarPool/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "requests":
		if err := listRequests(storageSvc); err != nil {
			log.Fatalf("Error listing requests: %v", err)
		}
	case "groups":
		date := ""
		if len(os.Args) > 2 {
			date = os.Args[2]
		}
		if err := listGroups(storageSvc, date); err != nil {
			log.Fatalf("Error listing groups: %v", err)
		}
	case "status":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin status <identity>")
			os.Exit(1)
		}
		if err := showStatus(storageSvc, os.Args[2]); err != nil {
			log.Fatalf("Error checking status: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func listRequests(s storage.Storage) error {
	requests, err := s.ListRequests()
	if err != nil {
		return err
	}
	for _, req := range requests {
		group := req.GroupRef
		if group == "" {
			group = "-"
		}
		fmt.Printf("%d\t%s\t%s\t%s\t%s %s\t%s\t%s\n",
			req.ID, req.CreatedAt.Format("2006-01-02 15:04"),
			req.Identity, req.Location, req.Date, req.Time, req.Status, group)
	}
	fmt.Printf("%d request(s)\n", len(requests))
	return nil
}

func listGroups(s storage.Storage, date string) error {
	var groups []models.Group
	var err error
	if date != "" {
		groups, err = s.ListGroupsByDate(date)
	} else {
		groups, err = s.ListGroups()
	}
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Printf("%s\t%s\t%s %s\tfounder=%s\t%s\n",
			g.GroupID, g.Location, g.Date, g.Time, g.FounderIdentity, g.State)
	}
	fmt.Printf("%d group(s)\n", len(groups))
	return nil
}

func showStatus(s storage.Storage, identity string) error {
	req, err := s.FindLatestRequestByIdentity(identity)
	if err != nil {
		return err
	}
	if req == nil {
		fmt.Printf("No request found for %s\n", identity)
		return nil
	}
	group := req.GroupRef
	if group == "" {
		group = "None"
	}
	fmt.Printf("Identity: %s\nLocation: %s\nDate:     %s %s\nStatus:   %s\nGroup:    %s\n",
		req.Identity, req.Location, req.Date, req.Time, req.Status, group)
	return nil
}
