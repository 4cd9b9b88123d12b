package escrow

import (
	"testing"

	"github.com/iov-one/weave-escrow/errors"
	"github.com/iov-one/weave-escrow/weavetest"
	"github.com/iov-one/weave-escrow/x/asset"
	"github.com/iov-one/weave-escrow/x/remote"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPurchaseLifecycle(t *testing.T) {
	Convey("Given a seller with 50 units and a buyer with 200 coins", t, func() {
		m := newMarket(t, 50, 200)
		buyer, seller := m.buyer.Address(), m.seller.Address()

		Convey("Initiating a purchase of 10 units locks the payment", func() {
			callID, err := m.initiate(10)
			So(err, ShouldBeNil)

			So(m.balance(buyer), ShouldEqual, 200-102)
			So(m.balance(ContractAddress), ShouldEqual, testReserve+100)
			So(m.balance(m.collector), ShouldEqual, 2)
			So(m.locked(), ShouldEqual, 100)

			Convey("Nothing is escrowed before the chain runs", func() {
				view, err := View(m.db, buyer)
				So(err, ShouldBeNil)
				So(*view, ShouldResemble, PendingEscrow{})
				So(m.units(buyer).Quantity, ShouldEqual, 0)

				_, err = m.initiate(1)
				So(errors.ErrDuplicate.Is(err), ShouldBeTrue)
			})

			Convey("Once the chain runs, the asset is moved and the funds stay escrowed", func() {
				created := m.now
				m.endBlock()

				So(m.units(buyer), ShouldResemble, asset.Holding{Quantity: 10})
				So(m.units(seller), ShouldResemble, asset.Holding{Quantity: 40})
				So(m.balance(buyer), ShouldEqual, 98)
				So(m.balance(seller), ShouldEqual, 0)
				So(m.balance(ContractAddress), ShouldEqual, testReserve+100-testFee)
				So(m.locked(), ShouldEqual, 100)

				view, err := View(m.db, buyer)
				So(err, ShouldBeNil)
				So(view.ReceiverID, ShouldResemble, seller)
				So(view.Amount, ShouldEqual, 100)
				So(view.TimeCreated.Time().Unix(), ShouldEqual, created.Unix())

				res, err := remote.FinalResult(m.db, callID)
				So(err, ShouldBeNil)
				So(res.Successful, ShouldBeTrue)

				_, err = m.initiate(1)
				So(errors.ErrDuplicate.Is(err), ShouldBeTrue)

				Convey("Approving pays the seller exactly once", func() {
					_, err := m.deliver(&ApproveMsg{}, m.buyer)
					So(err, ShouldBeNil)
					So(m.balance(seller), ShouldEqual, 100)
					So(m.balance(ContractAddress), ShouldEqual, testReserve-testFee)
					So(m.locked(), ShouldEqual, 0)

					_, err = m.deliver(&ApproveMsg{}, m.buyer)
					So(errors.ErrNotFound.Is(err), ShouldBeTrue)
					So(m.balance(seller), ShouldEqual, 100)
				})

				Convey("Cancelling refunds the buyer and returns the asset", func() {
					_, err := m.deliver(&CancelMsg{}, m.buyer)
					So(err, ShouldBeNil)
					// Only the two fees paid at initiation are lost.
					So(m.balance(buyer), ShouldEqual, 200-2*testFee)
					So(m.locked(), ShouldEqual, 0)

					m.endBlock()
					So(m.units(buyer).Quantity, ShouldEqual, 0)
					So(m.units(seller), ShouldResemble, asset.Holding{Quantity: 50})
					So(m.balance(ContractAddress), ShouldEqual, testReserve-2*testFee)

					_, err = m.deliver(&CancelMsg{}, m.buyer)
					So(errors.ErrNotFound.Is(err), ShouldBeTrue)

					Convey("The buyer can purchase again", func() {
						_, err := m.initiate(5)
						So(err, ShouldBeNil)
					})
				})

				Convey("A seller cannot act on the buyer's escrow", func() {
					_, err := m.deliver(&ApproveMsg{}, m.seller)
					So(errors.ErrNotFound.Is(err), ShouldBeTrue)
					_, err = m.deliver(&CancelMsg{}, m.seller)
					So(errors.ErrNotFound.Is(err), ShouldBeTrue)
				})
			})
		})

		Convey("A purchase the seller cannot serve is refunded", func() {
			So(m.cash.IssueCoins(m.db, buyer, 500), ShouldBeNil)
			callID, err := m.initiate(60)
			So(err, ShouldBeNil)
			m.endBlock()

			So(m.balance(buyer), ShouldEqual, 700-2*testFee)
			So(m.balance(ContractAddress), ShouldEqual, testReserve)
			So(m.locked(), ShouldEqual, 0)
			So(m.units(seller), ShouldResemble, asset.Holding{Quantity: 50})

			_, err = NewLedger().Get(m.db, buyer)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
			So(newPendingBucket().Has(m.db, buyer), ShouldNotBeNil)

			res, err := remote.FinalResult(m.db, callID)
			So(err, ShouldBeNil)
			So(res.Successful, ShouldBeFalse)
			So(res.Info, ShouldContainSubstring, "asset reservation failed")
		})

		Convey("A purchase aborted for lack of fee reserve releases the reserved units", func() {
			So(m.cash.MoveCoins(m.db, ContractAddress, weavetest.RandomAddr(t), testReserve), ShouldBeNil)
			callID, err := m.initiate(10)
			So(err, ShouldBeNil)
			m.endBlock()

			res, err := remote.FinalResult(m.db, callID)
			So(err, ShouldBeNil)
			So(res.Successful, ShouldBeFalse)
			So(res.Info, ShouldContainSubstring, "fee reserve")

			// The release call fee is taken from the refund.
			So(m.balance(buyer), ShouldEqual, 200-2*testFee-testFee)
			So(m.balance(ContractAddress), ShouldEqual, 0)
			So(m.locked(), ShouldEqual, 0)
			So(m.units(seller), ShouldResemble, asset.Holding{Quantity: 50})

			Convey("and the seller can serve a larger purchase afterwards", func() {
				So(m.cash.IssueCoins(m.db, ContractAddress, testReserve), ShouldBeNil)
				So(m.cash.IssueCoins(m.db, buyer, 500), ShouldBeNil)
				_, err := m.initiate(45)
				So(err, ShouldBeNil)
				m.endBlock()
				So(m.units(buyer).Quantity, ShouldEqual, 45)
				So(m.units(seller), ShouldResemble, asset.Holding{Quantity: 5})
			})
		})

		Convey("Only the contract can confirm a purchase", func() {
			_, err := m.initiate(10)
			So(err, ShouldBeNil)

			_, err = m.deliver(&ConfirmMsg{Buyer: buyer}, m.buyer)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			_, err = m.deliver(&ConfirmMsg{Buyer: buyer}, m.operator)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})

		Convey("The asset service cannot be used directly", func() {
			msg := &asset.TransferMsg{Quantity: 10, From: seller, To: buyer}
			_, err := m.deliver(msg, m.seller)
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			So(m.units(seller).Quantity, ShouldEqual, 50)
		})
	})
}

func TestTimeoutScan(t *testing.T) {
	Convey("Given two confirmed escrows", t, func() {
		m := newMarket(t, 50, 200)
		other := m.buyer
		_, err := m.initiate(10)
		So(err, ShouldBeNil)

		m.buyer = m.operator
		So(m.cash.IssueCoins(m.db, m.buyer.Address(), 100), ShouldBeNil)
		_, err = m.initiate(5)
		So(err, ShouldBeNil)
		m.buyer = other
		m.endBlock()
		So(m.locked(), ShouldEqual, 150)

		Convey("A scan by anybody is a no-op before the timeout", func() {
			_, err := m.deliver(&TimeoutScanMsg{}, m.buyer)
			So(err, ShouldBeNil)
			So(m.locked(), ShouldEqual, 150)
			So(m.balance(m.seller.Address()), ShouldEqual, 0)
		})

		Convey("A scan after the timeout pays all sellers", func() {
			m.now = m.now.Add(DefaultTimeout.Duration())
			_, err := m.deliver(&TimeoutScanMsg{}, m.buyer)
			So(err, ShouldBeNil)
			So(m.locked(), ShouldEqual, 0)
			So(m.balance(m.seller.Address()), ShouldEqual, 150)

			view, err := View(m.db, m.buyer.Address())
			So(err, ShouldBeNil)
			So(view.Amount, ShouldEqual, 0)
		})

		Convey("The operator sweeps without waiting", func() {
			_, err := m.deliver(&TimeoutScanMsg{}, m.operator)
			So(err, ShouldBeNil)
			So(m.locked(), ShouldEqual, 0)
			So(m.balance(m.seller.Address()), ShouldEqual, 150)

			Convey("and sweeping again is a no-op", func() {
				_, err := m.deliver(&TimeoutScanMsg{}, m.operator)
				So(err, ShouldBeNil)
				So(m.balance(m.seller.Address()), ShouldEqual, 150)
			})
		})

		Convey("A scan requires a signer", func() {
			_, err := m.deliver(&TimeoutScanMsg{})
			So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
		})
	})
}

func TestInterruptedPurchaseIsRefunded(t *testing.T) {
	m := newMarket(t, 50, 200)
	// Without the confirmation handler the chain ends after the
	// reservation and the pending purchase is left behind.
	delete(m.router, pathConfirm)

	_, err := m.initiate(10)
	if err != nil {
		t.Fatalf("initiate: %+v", err)
	}

	// The chain is still queued, nothing can be refunded yet.
	if _, err := m.deliver(&TimeoutScanMsg{}, m.operator); err != nil {
		t.Fatalf("scan: %+v", err)
	}
	if got := m.locked(); got != 100 {
		t.Fatalf("want 100 locked, got %d", got)
	}

	m.endBlock()
	if _, err := m.deliver(&TimeoutScanMsg{}, m.operator); err != nil {
		t.Fatalf("scan: %+v", err)
	}
	if got := m.locked(); got != 0 {
		t.Fatalf("want nothing locked, got %d", got)
	}
	if got := m.balance(m.buyer.Address()); got != 200-2*testFee {
		t.Fatalf("want buyer refunded, got %d", got)
	}
	if err := newPendingBucket().Has(m.db, m.buyer.Address()); !errors.ErrNotFound.Is(err) {
		t.Fatalf("pending purchase not removed: %v", err)
	}

	// The units reserved for the purchase are released by the next block.
	if got := m.units(m.seller.Address()); got.Reserved != 10 {
		t.Fatalf("want 10 units reserved before the release, got %+v", got)
	}
	m.endBlock()
	if got := m.units(m.seller.Address()); got != (asset.Holding{Quantity: 50}) {
		t.Fatalf("want the reservation released, got %+v", got)
	}
}
