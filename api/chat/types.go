package chat

import "time"

// ChatInfo is one conversation in a location's inbox
type ChatInfo struct {
	LocationID  string    `json:"locationId"`
	ChatID      int64     `json:"chatId"`
	ContactName string    `json:"contactName"`
	ContactID   string    `json:"contactId"`
	LastMessage string    `json:"lastMessage"`
	Date        time.Time `json:"date"`
	URL         string    `json:"url"`
}

// Contact is a lookup match
type Contact struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (c Contact) Name() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type ContactInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	URL       string `json:"Url"`
}

type Message struct {
	Date        time.Time `json:"date"`
	MessageID   string    `json:"messageId"`
	Text        string    `json:"text"`
	ManagerName string    `json:"managerName"`
	Inbound     bool      `json:"inbound"`
	URL         string    `json:"Url"`
}

type SendRequest struct {
	LocationID  string `json:"locationId" validate:"required"`
	ContactID   string `json:"contactId" validate:"required"`
	Text        string `json:"text" validate:"required"`
	ManagerName string `json:"managerName"`
}

// SendResult carries the chat the message landed in
type SendResult struct {
	ID int64 `json:"ID"`
}
