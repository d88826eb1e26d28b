package walletdata_test

import (
	"os"
	"path/filepath"

	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	"github.com/crypto-power/fediwallet/libwallet/utils"
	. "github.com/crypto-power/fediwallet/libwallet/walletdata"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func tx(id string, createdAt int64) *txtypes.Transaction {
	return &txtypes.Transaction{
		ID:        id,
		CreatedAt: createdAt,
		Amount:    21000,
		Kind:      txtypes.KindLnPay,
		State:     txtypes.LnPaySuccess{Preimage: "pre-" + id},
		Notes:     "note " + id,
	}
}

func ids(txs []*txtypes.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

var _ = Describe("Wallet data DB", func() {
	var (
		dir    string
		dbPath string
		db     *DB
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "walletdata")
		Expect(err).To(BeNil())
		dbPath = filepath.Join(dir, DbName)

		db, err = Initialize(dbPath)
		Expect(err).To(BeNil())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
		os.RemoveAll(dir)
	})

	It("keeps history order, including equal timestamps", func() {
		list := []*txtypes.Transaction{tx("a", 5), tx("c", 5), tx("b", 3), tx("d", 1)}
		Expect(db.ReplaceAll("fed1", list)).To(Succeed())

		got, err := db.Read("fed1", 0, 0)
		Expect(err).To(BeNil())
		Expect(ids(got)).To(Equal([]string{"a", "c", "b", "d"}))
		Expect(got[0].State).To(Equal(txtypes.LnPaySuccess{Preimage: "pre-a"}))

		page, err := db.Read("fed1", 1, 2)
		Expect(err).To(BeNil())
		Expect(ids(page)).To(Equal([]string{"c", "b"}))
	})

	It("replaces the previous history", func() {
		Expect(db.ReplaceAll("fed1", []*txtypes.Transaction{tx("a", 2), tx("b", 1)})).To(Succeed())
		Expect(db.ReplaceAll("fed1", []*txtypes.Transaction{tx("z", 9)})).To(Succeed())

		count, err := db.Count("fed1")
		Expect(err).To(BeNil())
		Expect(count).To(Equal(1))

		one, err := db.FindOne("fed1", "z")
		Expect(err).To(BeNil())
		Expect(one.Notes).To(Equal("note z"))

		_, err = db.FindOne("fed1", "a")
		Expect(err).ToNot(BeNil())
	})

	It("keeps federations apart", func() {
		Expect(db.ReplaceAll("fed1", []*txtypes.Transaction{tx("a", 1)})).To(Succeed())
		Expect(db.ReplaceAll("fed2", []*txtypes.Transaction{tx("b", 1), tx("c", 2)})).To(Succeed())

		got, err := db.Read("fed1", 0, 0)
		Expect(err).To(BeNil())
		Expect(ids(got)).To(Equal([]string{"a"}))

		empty, err := db.Read("unknown", 0, 0)
		Expect(err).To(BeNil())
		Expect(empty).To(BeEmpty())
	})

	It("filters by kind", func() {
		deposit := tx("dep", 4)
		deposit.Kind = txtypes.KindOnchainDeposit
		deposit.State = txtypes.PlainState(txtypes.StateWaitingForTransaction)
		Expect(db.ReplaceAll("fed1", []*txtypes.Transaction{deposit, tx("pay", 3)})).To(Succeed())

		got, err := db.ReadKind("fed1", txtypes.KindOnchainDeposit)
		Expect(err).To(BeNil())
		Expect(ids(got)).To(Equal([]string{"dep"}))
	})

	It("reports a database held by another handle", func() {
		_, err := Initialize(dbPath)
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(Equal(utils.ErrBackendDatabaseInUse))
	})

	It("clears and survives reopening", func() {
		Expect(db.ReplaceAll("fed1", []*txtypes.Transaction{tx("a", 1)})).To(Succeed())
		lastSaved, err := db.LastSaved("fed1")
		Expect(err).To(BeNil())
		Expect(lastSaved).To(BeNumerically(">", 0))

		Expect(db.Close()).To(Succeed())
		db, err = Initialize(dbPath)
		Expect(err).To(BeNil())

		count, err := db.Count("fed1")
		Expect(err).To(BeNil())
		Expect(count).To(Equal(1))

		Expect(db.ClearSavedTransactions("fed1")).To(Succeed())
		count, err = db.Count("fed1")
		Expect(err).To(BeNil())
		Expect(count).To(Equal(0))
		Expect(db.ClearSavedTransactions("never-saved")).To(Succeed())
	})
})
