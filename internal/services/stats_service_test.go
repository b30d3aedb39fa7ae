package services

import (
	"testing"
	"time"

	"bondledger/internal/catalog"
	"bondledger/internal/store"
	"bondledger/internal/testutil"
)

func TestBondStats(t *testing.T) {
	t.Run("two_investors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		cat.Add(testutil.NewBondFixture(1))
		svc := NewStatsService(st, cat)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestInvestment(t, db, alice.ID, 1, "0x1111111111111111111111111111111111111111", 100)
		testutil.CreateTestInvestment(t, db, bob.ID, 1, "0x2222222222222222222222222222222222222222", 200)

		stats, err := svc.BondStats(1)
		testutil.AssertNoError(t, err)

		if stats.TotalInvested != 300 {
			t.Errorf("expected total invested 300, got %f", stats.TotalInvested)
		}
		if stats.InvestorCount != 2 {
			t.Errorf("expected 2 investors, got %d", stats.InvestorCount)
		}
		if stats.InvestmentCount != 2 {
			t.Errorf("expected 2 investments, got %d", stats.InvestmentCount)
		}
		if stats.CouponRate != 4.5 {
			t.Errorf("expected coupon rate 4.5%%, got %f", stats.CouponRate)
		}
	})

	t.Run("investors_counted_case_insensitively", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		cat.Add(testutil.NewBondFixture(1))
		svc := NewStatsService(st, cat)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestInvestment(t, db, user.ID, 1, "0xAAAA000000000000000000000000000000000001", 100)
		testutil.CreateTestInvestment(t, db, user.ID, 1, "0xaaaa000000000000000000000000000000000001", 200)

		stats, err := svc.BondStats(1)
		testutil.AssertNoError(t, err)
		if stats.InvestorCount != 1 {
			t.Errorf("expected 1 distinct investor, got %d", stats.InvestorCount)
		}
	})

	t.Run("utilization", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		bond := testutil.NewBondFixture(1)
		bond.FaceValue = 1000
		cat.Add(bond)
		svc := NewStatsService(st, cat)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestInvestment(t, db, user.ID, 1, testutil.TestWallet(t), 250)

		stats, err := svc.BondStats(1)
		testutil.AssertNoError(t, err)
		if stats.Utilization != 25 {
			t.Errorf("expected utilization 25%%, got %f", stats.Utilization)
		}
	})

	t.Run("zero_face_value_guard", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		bond := testutil.NewBondFixture(1)
		bond.FaceValue = 0
		cat.Add(bond)
		svc := NewStatsService(st, cat)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestInvestment(t, db, user.ID, 1, testutil.TestWallet(t), 250)

		stats, err := svc.BondStats(1)
		testutil.AssertNoError(t, err)
		if stats.Utilization != 0 {
			t.Errorf("expected utilization 0 with zero face value, got %f", stats.Utilization)
		}
	})

	t.Run("negative_days_past_maturity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		bond := testutil.NewBondFixture(1)
		bond.MaturityDate = time.Now().AddDate(0, 0, -30).Format(time.RFC3339)
		cat.Add(bond)
		svc := NewStatsService(st, cat)

		stats, err := svc.BondStats(1)
		testutil.AssertNoError(t, err)
		if stats.DaysToMaturity >= 0 {
			t.Errorf("expected negative days to maturity, got %d", stats.DaysToMaturity)
		}
	})

	t.Run("bond_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewStatsService(store.New(db), catalog.New())

		_, err := svc.BondStats(12345)
		testutil.AssertAppError(t, err, "BOND_NOT_FOUND")
	})

	t.Run("malformed_maturity_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cat := catalog.New()
		bond := testutil.NewBondFixture(1)
		bond.MaturityDate = "not-a-date"
		cat.Add(bond)
		svc := NewStatsService(store.New(db), cat)

		_, err := svc.BondStats(1)
		testutil.AssertAppError(t, err, "INVALID_DATE")
	})
}

func TestPlatformStats(t *testing.T) {
	t.Run("aggregates_across_bonds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		cat.Add(testutil.NewBondFixture(0))
		cat.Add(testutil.NewBondFixture(1))
		svc := NewStatsService(st, cat)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestInvestment(t, db, alice.ID, 0, "0x1111111111111111111111111111111111111111", 100)
		testutil.CreateTestInvestment(t, db, alice.ID, 1, "0x1111111111111111111111111111111111111111", 50)
		testutil.CreateTestInvestment(t, db, bob.ID, 1, "0x2222222222222222222222222222222222222222", 200)

		stats, err := svc.PlatformStats()
		testutil.AssertNoError(t, err)

		if stats.TotalInvested != 350 {
			t.Errorf("expected total invested 350, got %f", stats.TotalInvested)
		}
		if stats.TotalInvestors != 2 {
			t.Errorf("expected 2 investors, got %d", stats.TotalInvestors)
		}
		if stats.TotalInvestments != 3 {
			t.Errorf("expected 3 investments, got %d", stats.TotalInvestments)
		}
		if stats.TotalBonds != 2 {
			t.Errorf("expected 2 bonds, got %d", stats.TotalBonds)
		}

		bd0 := stats.BondStats[0]
		if bd0.TotalInvested != 100 || bd0.InvestmentCount != 1 || bd0.InvestorCount != 1 {
			t.Errorf("unexpected breakdown for bond 0: %+v", bd0)
		}
		bd1 := stats.BondStats[1]
		if bd1.TotalInvested != 250 || bd1.InvestmentCount != 2 || bd1.InvestorCount != 2 {
			t.Errorf("unexpected breakdown for bond 1: %+v", bd1)
		}
	})

	t.Run("removed_bond_kept_in_totals_omitted_from_breakdown", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		st := store.New(db)
		cat := catalog.New()
		cat.Add(testutil.NewBondFixture(0))
		cat.Add(testutil.NewBondFixture(7))
		svc := NewStatsService(st, cat)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestInvestment(t, db, user.ID, 0, testutil.TestWallet(t), 100)
		testutil.CreateTestInvestment(t, db, user.ID, 7, testutil.TestWallet(t), 500)

		testutil.AssertNoError(t, cat.Remove(7))

		stats, err := svc.PlatformStats()
		testutil.AssertNoError(t, err)

		// Ledger fidelity: the orphaned row still counts platform-wide.
		if stats.TotalInvested != 600 {
			t.Errorf("expected total invested 600 including orphaned row, got %f", stats.TotalInvested)
		}
		if stats.TotalInvestments != 2 {
			t.Errorf("expected 2 investments, got %d", stats.TotalInvestments)
		}
		if _, ok := stats.BondStats[7]; ok {
			t.Error("expected removed bond to be omitted from the breakdown")
		}
		if stats.TotalBonds != 1 {
			t.Errorf("expected 1 listed bond, got %d", stats.TotalBonds)
		}
	})

	t.Run("empty_ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		cat := catalog.New()
		catalog.Seed(cat)
		svc := NewStatsService(store.New(db), cat)

		stats, err := svc.PlatformStats()
		testutil.AssertNoError(t, err)
		if stats.TotalInvested != 0 || stats.TotalInvestments != 0 || stats.TotalInvestors != 0 {
			t.Errorf("expected zeroed stats on empty ledger, got %+v", stats)
		}
		if stats.TotalBonds != 3 {
			t.Errorf("expected 3 seeded bonds, got %d", stats.TotalBonds)
		}
	})
}
