package main

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/itsm-a-dev/BetTrackingBot/models"
)

var db *gorm.DB

func initDB(dsn string, autoMigrate bool) {
	if dsn == "" {
		log.Fatal("DB_DSN is required (postgres connection string)")
	}
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if autoMigrate {
		if err := db.AutoMigrate(&models.TrackedBet{}); err != nil {
			log.Printf("migration warning (tracked_bets): %v", err)
		}
		if err := db.AutoMigrate(&models.SlipCapture{}); err != nil {
			log.Printf("migration warning (slip_captures): %v", err)
		}
	}
}

// DBStore persists the tracker's active set in Postgres. The snapshot
// holds only unsettled bets; settled bets are deleted on save so a
// restart never resurrects them.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore { return &DBStore{db: db} }

func (s *DBStore) Load() (map[string]*models.TrackedBet, error) {
	var rows []models.TrackedBet
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]*models.TrackedBet, len(rows))
	for i := range rows {
		b := rows[i]
		out[b.ID] = &b
	}
	return out, nil
}

func (s *DBStore) Save(bets map[string]*models.TrackedBet) error {
	ids := make([]string, 0, len(bets))
	for id, b := range bets {
		ids = append(ids, id)
		if err := s.db.Save(b).Error; err != nil {
			return err
		}
	}
	q := s.db
	if len(ids) > 0 {
		q = q.Where("id NOT IN ?", ids)
	} else {
		q = q.Where("1 = 1")
	}
	return q.Delete(&models.TrackedBet{}).Error
}

func recordCapture(cap *models.SlipCapture) {
	if db == nil {
		return
	}
	if err := db.Create(cap).Error; err != nil {
		log.Printf("capture record warning: %v", err)
	}
}
