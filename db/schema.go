package db

import (
	"fmt"
	"log/slog"
)

var tables = []string{
	`create table if not exists Users(
		login varchar(50) not null primary key,
		password varchar(30) not null,
		role varchar(20) not null,
		favoriteItems varchar(400),
		phoneNum varchar(20))`,
	`create table if not exists Items(
		itemName varchar(50) not null primary key,
		ingredients varchar(300) not null,
		typeOfItem varchar(40) not null,
		price decimal(10, 2) not null,
		description varchar(400))`,
	`create table if not exists Store(
		storeID integer not null primary key,
		address varchar(100),
		city varchar(50),
		state varchar(50),
		isOpen varchar(10),
		reviewScore decimal(3, 1))`,
	`create table if not exists FoodOrder(
		orderID integer not null primary key,
		login varchar(50) not null,
		storeID integer not null,
		totalPrice decimal(10, 2) not null,
		orderTimestamp timestamp not null,
		orderStatus varchar(50))`,
	`create table if not exists ItemsInOrder(
		orderID integer not null,
		itemName varchar(50) not null,
		quantity integer not null,
		primary key (orderID, itemName))`,
}

// mysql has no "if not exists" for indices.
var indices = []string{
	`create index if not exists foodorder_login_ix on FoodOrder (login)`,
	`create index if not exists foodorder_ts_ix on FoodOrder (orderTimestamp)`,
}

// InitStorage creates the pizza store tables when they are missing.
func InitStorage(e Executor, driver string) error {
	stmts := tables
	if driver != DriverMySQL {
		stmts = append(stmts[:len(stmts):len(stmts)], indices...)
	}

	for _, stmt := range stmts {
		if _, err := e.ExecuteUpdate(stmt); err != nil {
			slog.ErrorContext(pkgCtx, "schema statement failed", "stmt", stmt, "error", err)

			return fmt.Errorf("could not create schema: %w", err)
		}
	}

	return nil
}
