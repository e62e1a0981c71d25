package dto

type RegisterUserRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	FirstName    string `json:"first_name" validate:"required,max=100"`
	LastName     string `json:"last_name" validate:"required,max=100"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateActivityRequest struct {
	EventID      int64  `json:"event_id"`
	Title        string `json:"title" validate:"required,max=255"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	Introduction string `json:"introduction"`
	Date         string `json:"date" validate:"required,isodate"`
	StartTime    string `json:"start_time" validate:"required,hhmm"`
	EndTime      string `json:"end_time" validate:"required,hhmm"`
	Room         string `json:"room" validate:"required"`
	Floor        string `json:"floor"`
	Type         string `json:"type" validate:"required"`
	Category     string `json:"category"`
	Capacity     *int   `json:"capacity" validate:"omitempty,gt=0"`
}

type CreateEventRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required,isodate"`
	EndDate     string `json:"end_date" validate:"required,isodate"`
	Venue       string `json:"venue" validate:"required"`
	City        string `json:"city" validate:"required"`
	Address     string `json:"address"`
	Capacity    *int   `json:"capacity" validate:"omitempty,gt=0"`
}

type UpdateEventRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" validate:"required,isodate"`
	EndDate     string `json:"end_date" validate:"required,isodate"`
	Venue       string `json:"venue" validate:"required"`
	City        string `json:"city" validate:"required"`
	Address     string `json:"address"`
	Capacity    *int   `json:"capacity" validate:"omitempty,gt=0"`
	Status      string `json:"status" validate:"omitempty,oneof=active archived draft"`
}

// RegistrationNoticeMessage is the payload published to RabbitMQ after a
// successful registration; the consumer worker turns it into an e-mail.
type RegistrationNoticeMessage struct {
	UserID     int64  `json:"user_id"`
	ActivityID int64  `json:"activity_id"`
	Email      string `json:"email"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	Room       string `json:"room"`
}
