package queue_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scusemua/containers/common/configuration"
	"github.com/scusemua/containers/common/queue"
	"github.com/scusemua/containers/common/types"
)

var _ = Describe("Queue Tests", func() {
	It("Will create a new, empty queue correctly", func() {
		q, err := queue.New[string](1, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(q).ToNot(BeNil())
		Expect(q.Len()).To(Equal(0))
		Expect(q.Cap()).To(Equal(1))
		Expect(q.IsEmpty()).To(BeTrue())
		Expect(q.IsFull()).To(BeFalse())

		val, ok := q.Dequeue()
		Expect(ok).To(BeFalse())
		Expect(val).To(Equal(""))
	})

	It("Will reject a non-positive capacity", func() {
		q, err := queue.New[string](0, nil)
		Expect(q).To(BeNil())
		Expect(err).To(MatchError(types.ErrInvalidArgument))

		_, err = queue.New[string](-1, nil)
		Expect(err).To(MatchError(types.ErrInvalidArgument))
	})

	It("Will create a queue from options", func() {
		opts := configuration.DefaultOptions()
		opts.Capacity = 3

		q, err := queue.NewFromOptions[int](opts, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(q.Cap()).To(Equal(3))

		opts.Capacity = 0
		_, err = queue.NewFromOptions[int](opts, nil)
		Expect(err).To(MatchError(types.ErrInvalidArgument))
	})

	It("Will handle a single enqueue and dequeue operation correctly", func() {
		q, _ := queue.New[string](1, nil)

		Expect(q.Enqueue("element")).To(Succeed())
		Expect(q.Len()).To(Equal(1))
		Expect(q.IsEmpty()).To(BeFalse())

		val, ok := q.Peek()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("element"))

		elem, ok := q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(elem).To(Equal("element"))
		Expect(q.Len()).To(Equal(0))
		Expect(q.IsEmpty()).To(BeTrue())
	})

	It("Will handle a series of 'enqueue' operations followed by a series of 'dequeue' operations", func() {
		alphabet := "abcdefghijklmnopqrstuvwxyz"
		q, _ := queue.New[string](len(alphabet), nil)

		for i := 0; i < len(alphabet); i++ {
			letter := alphabet[i : i+1]
			Expect(q.Enqueue(letter)).To(Succeed())
			Expect(q.Len()).To(Equal(i + 1))

			val, ok := q.Peek()
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal("a"))
		}

		Expect(q.Len()).To(Equal(len(alphabet)))
		Expect(q.IsFull()).To(BeTrue())

		length := len(alphabet)
		for i := 0; i < len(alphabet); i++ {
			Expect(q.Len()).To(Equal(length))

			val, ok := q.Dequeue()
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal(alphabet[i : i+1]))

			length -= 1
		}
	})

	It("Will reject an enqueue past capacity with an overflow", func() {
		q, _ := queue.New[int](3, nil)

		for i := 0; i < 3; i++ {
			Expect(q.Enqueue(i)).To(Succeed())
		}

		err := q.Enqueue(3)
		Expect(err).To(MatchError(types.ErrOverflow))
		Expect(types.StatusOf(err)).To(Equal(types.Overflow))
		Expect(q.Len()).To(Equal(3))

		val, ok := q.Peek()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal(0))
	})

	It("Will reject an absent payload", func() {
		q, _ := queue.New[*int](2, nil)
		Expect(q.Enqueue(nil)).To(MatchError(types.ErrNullData))
		Expect(q.IsEmpty()).To(BeTrue())
	})

	It("Will report overflow before an absent payload", func() {
		q, _ := queue.New[*int](1, nil)
		v := 1
		Expect(q.Enqueue(&v)).To(Succeed())
		Expect(q.Enqueue(nil)).To(MatchError(types.ErrOverflow))
	})

	It("Will return to its prior size after an enqueue/dequeue round trip", func() {
		q, _ := queue.New[string](4, nil)
		Expect(q.Enqueue("a")).To(Succeed())
		Expect(q.Enqueue("b")).To(Succeed())

		Expect(q.Enqueue("c")).To(Succeed())
		val, ok := q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("a"))
		Expect(q.Len()).To(Equal(2))
	})

	It("Will correctly handle a series of intermingled 'enqueue' and 'dequeue' operations", func() {
		q, _ := queue.New[string](4, nil)

		Expect(q.Enqueue("a")).To(Succeed())
		Expect(q.Enqueue("b")).To(Succeed())
		Expect(q.Enqueue("c")).To(Succeed())

		Expect(q.Len()).To(Equal(3))
		val, ok := q.Peek()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("a"))

		val, ok = q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("a"))

		val, ok = q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("b"))

		val, ok = q.Peek()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("c"))

		Expect(q.Enqueue("d")).To(Succeed())
		Expect(q.Enqueue("e")).To(Succeed())
		Expect(q.Enqueue("f")).To(Succeed())
		Expect(q.Len()).To(Equal(4))
		Expect(q.IsFull()).To(BeTrue())

		for _, want := range []string{"c", "d", "e", "f"} {
			val, ok = q.Dequeue()
			Expect(ok).To(BeTrue())
			Expect(val).To(Equal(want))
		}

		val, ok = q.Peek()
		Expect(ok).To(BeFalse())
		Expect(val).To(Equal(""))
		Expect(q.Len()).To(Equal(0))

		Expect(q.Enqueue("g")).To(Succeed())
		val, ok = q.Dequeue()
		Expect(ok).To(BeTrue())
		Expect(val).To(Equal("g"))
		Expect(q.IsEmpty()).To(BeTrue())
	})

	Context("Clear and Destroy", func() {
		var (
			q        *queue.Queue[string]
			released []string
		)

		BeforeEach(func() {
			released = nil

			var err error
			q, err = queue.New[string](4, func(s string) {
				released = append(released, s)
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("Will release every payload on Clear", func() {
			Expect(q.Enqueue("x")).To(Succeed())
			Expect(q.Enqueue("y")).To(Succeed())

			Expect(q.Clear()).To(Succeed())
			Expect(q.IsEmpty()).To(BeTrue())
			Expect(released).To(Equal([]string{"x", "y"}))

			Expect(q.Enqueue("z")).To(Succeed())
			Expect(q.Len()).To(Equal(1))
		})

		It("Will report an underflow when clearing an empty queue", func() {
			err := q.Clear()
			Expect(err).To(MatchError(types.ErrUnderflow))
			Expect(types.StatusOf(err)).To(Equal(types.Underflow))
		})

		It("Will not release dequeued payloads", func() {
			Expect(q.Enqueue("x")).To(Succeed())
			_, _ = q.Dequeue()
			Expect(released).To(BeEmpty())
		})

		It("Will release each resident payload exactly once and invalidate the queue on Destroy", func() {
			Expect(q.Enqueue("x")).To(Succeed())
			Expect(q.Enqueue("y")).To(Succeed())
			Expect(q.Enqueue("z")).To(Succeed())
			_, _ = q.Dequeue()

			Expect(q.Destroy()).To(Succeed())
			Expect(released).To(Equal([]string{"y", "z"}))

			Expect(q.Enqueue("w")).To(MatchError(types.ErrDestroyed))
			Expect(q.Clear()).To(MatchError(types.ErrNullPointer))
			Expect(q.Destroy()).To(MatchError(types.ErrNullPointer))

			_, ok := q.Dequeue()
			Expect(ok).To(BeFalse())
			_, ok = q.Peek()
			Expect(ok).To(BeFalse())
			Expect(q.IsEmpty()).To(BeTrue())
			Expect(q.IsFull()).To(BeFalse())

			Expect(released).To(HaveLen(2))
		})

		It("Will destroy an empty queue", func() {
			Expect(q.Destroy()).To(Succeed())
			Expect(released).To(BeEmpty())
		})
	})

	It("Will fail cleanly on a nil queue", func() {
		var q *queue.Queue[int]
		Expect(q.Enqueue(1)).To(MatchError(types.ErrNullPointer))
		Expect(q.Clear()).To(MatchError(types.ErrNullPointer))
		Expect(q.Destroy()).To(MatchError(types.ErrNullPointer))

		_, ok := q.Dequeue()
		Expect(ok).To(BeFalse())
		Expect(q.Len()).To(Equal(0))
		Expect(q.Cap()).To(Equal(0))
	})
})
