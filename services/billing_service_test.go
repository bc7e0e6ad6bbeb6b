package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"hms-backend/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInvoiceLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	reservations := NewReservationService(db)
	billing := NewBillingService(db, 0.12)

	r := mustCreateReservation(t, reservations, typeID, date(2024, 1, 10), date(2024, 1, 13))

	inv, err := billing.CreateInvoice(r.ID)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if !almostEqual(inv.RoomCharges, 300) {
		t.Fatalf("room charges: want 300, got %v", inv.RoomCharges)
	}
	if !almostEqual(inv.Taxes, 36) {
		t.Fatalf("taxes: want 36, got %v", inv.Taxes)
	}
	if !almostEqual(inv.TotalAmount, 336) {
		t.Fatalf("total: want 336, got %v", inv.TotalAmount)
	}
	if inv.PaymentStatus != models.PaymentUnpaid {
		t.Fatalf("new invoice should be Unpaid, got %q", inv.PaymentStatus)
	}

	if _, err := billing.AddCharge(inv.ID, "minibar", 50); err != nil {
		t.Fatalf("add charge: %v", err)
	}
	got, err := billing.GetInvoice(inv.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if !almostEqual(got.AdditionalCharges, 50) {
		t.Fatalf("additional charges: want 50, got %v", got.AdditionalCharges)
	}
	if !almostEqual(got.Taxes, 42) {
		t.Fatalf("taxes after charge: want 42, got %v", got.Taxes)
	}
	if !almostEqual(got.TotalAmount, 392) {
		t.Fatalf("total after charge: want 392, got %v", got.TotalAmount)
	}
	// Invariant: total = roomCharges + additionalCharges + taxes.
	if !almostEqual(got.TotalAmount, got.RoomCharges+got.AdditionalCharges+got.Taxes) {
		t.Fatalf("total %v does not equal sum of parts", got.TotalAmount)
	}

	if _, err := billing.RecordPayment(inv.ID, 200, "card", "tx-1", "reception"); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	got, _ = billing.GetInvoice(inv.ID)
	if got.PaymentStatus != models.PaymentPartial {
		t.Fatalf("after $200: want Partially Paid, got %q", got.PaymentStatus)
	}

	if _, err := billing.RecordPayment(inv.ID, 192, "card", "tx-2", "reception"); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	got, _ = billing.GetInvoice(inv.ID)
	if got.PaymentStatus != models.PaymentPaid {
		t.Fatalf("after $392 paid in full: want Paid, got %q", got.PaymentStatus)
	}
	if got.PaymentDate == nil {
		t.Fatalf("payment date should be set once fully paid")
	}

	payments, err := billing.Payments(inv.ID)
	if err != nil {
		t.Fatalf("payments: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}
}

func TestCreateInvoiceConflictsAndNotFound(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	reservations := NewReservationService(db)
	billing := NewBillingService(db, 0.12)

	r := mustCreateReservation(t, reservations, typeID, date(2024, 1, 10), date(2024, 1, 13))

	if _, err := billing.CreateInvoice(r.ID); err != nil {
		t.Fatalf("first invoice: %v", err)
	}
	if _, err := billing.CreateInvoice(r.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("second invoice: expected ErrConflict, got %v", err)
	}
	if _, err := billing.CreateInvoice(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing reservation: expected ErrNotFound, got %v", err)
	}
}

func TestZeroNightStayYieldsZeroCharge(t *testing.T) {
	db := newTestDB(t)
	typeID, roomIDs := seedRoomType(t, db, "Standard", 100, 2, 1)
	billing := NewBillingService(db, 0.12)

	// A same-day stay can't be created through the service; it can still
	// exist in the store (imports, legacy rows) and must invoice to zero.
	roomID := roomIDs[0]
	r := models.Reservation{
		ReferenceCode: "RES-LEGACY1",
		FirstName:     "Day",
		LastName:      "Guest",
		CheckInDate:   date(2024, 1, 10),
		CheckOutDate:  date(2024, 1, 10),
		Status:        models.ReservationConfirmed,
		TotalGuests:   1,
		RoomTypeID:    typeID,
		RoomID:        &roomID,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("insert reservation: %v", err)
	}

	inv, err := billing.CreateInvoice(r.ID)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if inv.RoomCharges != 0 || inv.Taxes != 0 || inv.TotalAmount != 0 {
		t.Fatalf("zero-night stay should invoice to zero, got %+v", inv)
	}
}

func TestAddChargeValidation(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	reservations := NewReservationService(db)
	billing := NewBillingService(db, 0.12)

	r := mustCreateReservation(t, reservations, typeID, date(2024, 1, 10), date(2024, 1, 12))
	inv, err := billing.CreateInvoice(r.ID)
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if _, err := billing.AddCharge(inv.ID, "", 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty description: expected ErrValidation, got %v", err)
	}
	if _, err := billing.AddCharge(inv.ID, "minibar", 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero amount: expected ErrValidation, got %v", err)
	}
	if _, err := billing.AddCharge(inv.ID, "minibar", -5); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative amount: expected ErrValidation, got %v", err)
	}
	if _, err := billing.RecordPayment(inv.ID, -5, "cash", "tx", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative payment: expected ErrValidation, got %v", err)
	}

	got, _ := billing.GetInvoice(inv.ID)
	if !almostEqual(got.AdditionalCharges, 0) {
		t.Fatalf("rejected charges must not change the invoice, got %v", got.AdditionalCharges)
	}
}

func TestPaymentStatusDerivation(t *testing.T) {
	cases := []struct {
		paid, total float64
		want        string
	}{
		{0, 100, models.PaymentUnpaid},
		{0.01, 100, models.PaymentPartial},
		{99.99, 100, models.PaymentPartial},
		{100, 100, models.PaymentPaid},
		{150, 100, models.PaymentPaid},
	}
	for _, tc := range cases {
		if got := paymentStatusFor(tc.paid, tc.total); got != tc.want {
			t.Errorf("paymentStatusFor(%v, %v) = %q, want %q", tc.paid, tc.total, got, tc.want)
		}
	}
}

func TestPaymentReplayOrderIndependent(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 2)
	reservations := NewReservationService(db)
	billing := NewBillingService(db, 0.12)

	amounts := []float64{192, 200}

	// Two invoices, same payments applied in opposite order; the final
	// derived status must match because it depends only on the sum.
	statuses := make([]string, 2)
	for i := 0; i < 2; i++ {
		r := mustCreateReservation(t, reservations, typeID, date(2024, 5, 1+2*i), date(2024, 5, 4+2*i))
		inv, err := billing.CreateInvoice(r.ID)
		if err != nil {
			t.Fatalf("create invoice: %v", err)
		}
		if _, err := billing.AddCharge(inv.ID, "minibar", 50); err != nil {
			t.Fatalf("add charge: %v", err)
		}

		order := amounts
		if i == 1 {
			order = []float64{amounts[1], amounts[0]}
		}
		for j, amount := range order {
			if _, err := billing.RecordPayment(inv.ID, amount, "card", "", "reception"); err != nil {
				t.Fatalf("payment %d: %v", j, err)
			}
		}
		got, _ := billing.GetInvoice(inv.ID)
		statuses[i] = got.PaymentStatus
	}

	if statuses[0] != statuses[1] || statuses[0] != models.PaymentPaid {
		t.Fatalf("replay order changed the outcome: %v", statuses)
	}
}

func TestInvoiceQueries(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 3)
	reservations := NewReservationService(db)
	billing := NewBillingService(db, 0.12)

	r1 := mustCreateReservation(t, reservations, typeID, date(2024, 1, 10), date(2024, 1, 12))
	r2 := mustCreateReservation(t, reservations, typeID, date(2024, 1, 15), date(2024, 1, 16))

	inv1, err := billing.CreateInvoice(r1.ID)
	if err != nil {
		t.Fatalf("invoice 1: %v", err)
	}
	if _, err := billing.CreateInvoice(r2.ID); err != nil {
		t.Fatalf("invoice 2: %v", err)
	}

	if _, err := billing.RecordPayment(inv1.ID, inv1.TotalAmount, "cash", "tx", ""); err != nil {
		t.Fatalf("pay invoice 1: %v", err)
	}

	paid, err := billing.ListByStatus(models.PaymentPaid)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(paid) != 1 || paid[0].ID != inv1.ID {
		t.Fatalf("expected only invoice %d to be Paid, got %d rows", inv1.ID, len(paid))
	}

	outstanding, err := billing.OutstandingInvoices()
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if len(outstanding) != 1 {
		t.Fatalf("expected 1 outstanding invoice, got %d", len(outstanding))
	}

	revenue, err := billing.TotalRevenue(time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("total revenue: %v", err)
	}
	if !almostEqual(revenue, inv1.TotalAmount) {
		t.Fatalf("revenue should count only paid invoices: want %v, got %v", inv1.TotalAmount, revenue)
	}
}
