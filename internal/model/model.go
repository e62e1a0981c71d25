package model

import "time"

type Event struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	StartDate   string    `db:"start_date" json:"start_date"`
	EndDate     string    `db:"end_date" json:"end_date"`
	Venue       string    `db:"venue" json:"venue"`
	City        string    `db:"city" json:"city"`
	Address     string    `db:"address" json:"address"`
	Capacity    *int      `db:"capacity" json:"capacity"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EventStats aggregates per-event counters shown on the event detail page.
type EventStats struct {
	TotalActivities    int `db:"total_activities" json:"total_activities"`
	TotalRegistrations int `db:"total_registrations" json:"total_registrations"`
	Workshops          int `db:"workshops" json:"workshops"`
	Conferences        int `db:"conferences" json:"conferences"`
}

type Activity struct {
	ID           int64       `db:"id" json:"id"`
	EventID      int64       `db:"event_id" json:"event_id"`
	Title        string      `db:"title" json:"title"`
	Subtitle     string      `db:"subtitle" json:"subtitle"`
	Description  string      `db:"description" json:"description"`
	Introduction string      `db:"introduction" json:"introduction"`
	Date         string      `db:"date" json:"date"`
	StartTime    string      `db:"start_time" json:"start_time"`
	EndTime      string      `db:"end_time" json:"end_time"`
	Room         string      `db:"room" json:"room"`
	Floor        string      `db:"floor" json:"floor"`
	Type         string      `db:"type" json:"type"`
	Category     string      `db:"category" json:"category"`
	Capacity     *int        `db:"capacity" json:"capacity"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	Presenters   []Presenter `json:"presenters"`
	IsFavorite   bool        `json:"is_favorite"`
	IsRegistered bool        `json:"is_registered"`
}

type Presenter struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
}

// FavoriteActivity is an activity joined with the bookmark timestamp.
type FavoriteActivity struct {
	Activity
	FavoritedAt time.Time `db:"favorited_at" json:"favorited_at"`
}

// RegisteredActivity is an activity joined with the registration row.
type RegisteredActivity struct {
	Activity
	Status       string    `db:"status" json:"status"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

type Media struct {
	ID           int64     `db:"id" json:"id"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"original_name"`
	MimeType     string    `db:"mime_type" json:"mime_type"`
	Size         int64     `db:"size" json:"size"`
	Path         string    `db:"path" json:"path"`
	Folder       string    `db:"folder" json:"folder"`
	UploadedBy   *int64    `db:"uploaded_by" json:"uploaded_by"`
	UploaderName string    `json:"uploader_name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Role         string    `db:"role" json:"role"`
	Phone        string    `db:"phone" json:"phone"`
	Organization string    `db:"organization" json:"organization"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
