package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=127.0.0.1 user=report dbname=report sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestLeaveQuery_SQL(t *testing.T) {
	db := dryRunDB(t)
	f := Filter{Dimension: DimensionDepartment, SelectedID: "Sales", Status: "approved", DateFrom: "2025-01-01", DateTo: "2025-01-31"}

	var rows []LeaveRow
	stmt := leaveQuery(db, f.Normalize(EntityLeave)).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "leave_requests"`)
	assert.Contains(t, sql, "employee_department = $1")
	assert.Contains(t, sql, "status = $2")
	assert.Contains(t, sql, "departure_datetime >= $3")
	assert.Contains(t, sql, "departure_datetime <= $4")
	assert.Contains(t, sql, "ORDER BY departure_datetime DESC")
	require.Len(t, stmt.Vars, 4)
	assert.Equal(t, "Sales", stmt.Vars[0])
}

func TestBookingQuery_SQL(t *testing.T) {
	db := dryRunDB(t)

	var rows []BookingRow
	stmt := bookingQuery(db, Filter{Dimension: DimensionCar, SelectedID: "7"}).Find(&rows).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "car_bookings"`)
	assert.Contains(t, sql, "car_id = $1")
	assert.NotContains(t, sql, "status =")
	require.Len(t, stmt.Vars, 1)
	assert.Equal(t, int64(7), stmt.Vars[0])

	// a non-numeric car id matches nothing rather than everything
	stmt = bookingQuery(db, Filter{Dimension: DimensionCar, SelectedID: "abc"}).Find(&rows).Statement
	require.Len(t, stmt.Vars, 1)
	assert.Equal(t, int64(-1), stmt.Vars[0])
}

func TestTicketQuery_SQL(t *testing.T) {
	db := dryRunDB(t)

	var rows []TicketRow
	stmt := ticketQuery(db, Filter{Dimension: DimensionStaff, SelectedID: "sam", Status: "all", Priority: "urgent"}).Find(&rows).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "helpdesk_tickets"`)
	assert.Contains(t, sql, "assigned_to_username = $1")
	assert.Contains(t, sql, "priority = $2")
	assert.NotContains(t, sql, "status =")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
}

func TestOptionsQuery(t *testing.T) {
	db := dryRunDB(t)

	assert.Nil(t, optionsQuery(db, EntityLeave, DimensionCar))

	var options []Option
	stmt := optionsQuery(db, EntityTicket, DimensionCategory).Find(&options).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "helpdesk_categories")
	assert.Contains(t, sql, "name AS label")

	stmt = optionsQuery(db, EntityLeave, DimensionEmployee).Find(&options).Statement
	assert.Contains(t, stmt.SQL.String(), "DISTINCT ON (employee_username)")
}

func TestSortOptions(t *testing.T) {
	options := []Option{{ID: "2", Label: "Zed"}, {ID: "1", Label: "Amal"}, {ID: "3", Label: "Mona"}}
	sortOptions(options)
	assert.Equal(t, []string{"Amal", "Mona", "Zed"}, []string{options[0].Label, options[1].Label, options[2].Label})
}
