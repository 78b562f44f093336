package repository

import (
	eventRepo "syncslot/database/repository/event"
	slotRepo "syncslot/database/repository/slot"
	userRepo "syncslot/database/repository/user"
)

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo

// Re-export the EventRepository interface and constructor.
type EventRepository = eventRepo.EventRepository

var NewMongoEventRepository = eventRepo.NewMongoEventRepo

// Re-export the SlotRepository interface, its filter and constructor.
type SlotRepository = slotRepo.SlotRepository

type SlotFilter = slotRepo.SlotFilter

var NewMongoSlotRepository = slotRepo.NewMongoSlotRepo
