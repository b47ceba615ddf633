package storage

import (
	"strconv"

	"cafe-assistant/booking-svc/internal/domain"
)

// ReferenceMenu is the canonical menu. Prices are in kopeks.
func ReferenceMenu() []domain.MenuItem {
	return []domain.MenuItem{
		{Category: "Основные блюда", Title: "Гриль стейк", Description: "Стейк из говядины с картофелем айдахо и томатным соусом", PriceCents: 93000},
		{Category: "Основные блюда", Title: "Палтус с бурым рисом", Description: "Нежное филе палтуса с гарниром из пряного риса", PriceCents: 89000},
		{Category: "Основные блюда", Title: "Антрекот", Description: "Антрекот из говядины с зеленым горошком и пюре из цветной капусты", PriceCents: 83000},
		{Category: "Основные блюда", Title: "Цыпленок по-итальянски", Description: "Запеченный цыпленок с овощами и соусом песто", PriceCents: 67000},
		{Category: "Основные блюда", Title: "Отбивная из свинины", Description: "Жареная свинина на сковороде с сыром и картофельным пюре", PriceCents: 74000},
		{Category: "Напитки", Title: "Домашний лимонад", Description: "Лимонад на минеральной воде с добавлением розмарина", PriceCents: 23000},
		{Category: "Напитки", Title: "Морс", Description: "Морс из черной смородины", PriceCents: 16000},
		{Category: "Напитки", Title: "Свежевыжатый сок", Description: "Сок на выбор: яблоко, апельсин, груша, киви", PriceCents: 32000},
		{Category: "Закуски", Title: "Арбуз пекорино", Description: "Кусочки арбуза с сыром пекорино, базиликом, мятой", PriceCents: 25000},
		{Category: "Закуски", Title: "Брускетта с крабом", Description: "Крабовое мясо на деревенском хлебе со огурцами и соусом", PriceCents: 39000},
		{Category: "Закуски", Title: "Страчателла", Description: "Сыр страчателла с томатами, клубникой и базиликом", PriceCents: 45000},
	}
}

// SeedTables is the default floor plan.
func SeedTables() []domain.Table {
	seats := []int{2, 2, 2, 4, 4, 4, 6, 2, 4, 6}
	tables := make([]domain.Table, 0, len(seats))
	for i, n := range seats {
		tables = append(tables, domain.Table{
			Code:     "T" + strconv.Itoa(i+1),
			Seats:    n,
			Zone:     "main",
			IsActive: true,
		})
	}
	return tables
}
