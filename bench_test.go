package xmladapter

import (
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
)

type benchStation struct {
	XMLName  xml.Name `adapter:"Station"`
	ID       int      `adapter:"id,attr"`
	Call     string
	Name     string
	Grid     string
	Power    int
	Active   bool
	Score    float64
	Operator benchOperator
	Logs     []benchEntry `adapter:"Logs,item=Entry"`
}

type benchOperator struct {
	Name  string
	Email string
}

type benchEntry struct {
	Call string `adapter:"call,attr"`
	Freq float64
}

const benchDoc = `<Station id="1"><Call>K1ABC</Call><Name>Home</Name><Grid>FN42</Grid><Power>100</Power>` +
	`<Active>true</Active><Score>95.5</Score><Operator><Name>Ann</Name><Email>ann@example.com</Email></Operator>` +
	`<Logs><Entry call="W1AW"><Freq>14.074</Freq></Entry><Entry call="G4XYZ"><Freq>7.074</Freq></Entry></Logs></Station>`

func BenchmarkView_ScalarGet(b *testing.B) {
	v, err := Create[benchStation](New(), benchDoc)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := v.Get("Score"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkView_ScalarSet(b *testing.B) {
	v, err := Create[benchStation](New(), benchDoc)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := v.Set("Power", i); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkView_Child(b *testing.B) {
	v, err := Create[benchStation](New(), benchDoc)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		op, err := v.Child("Operator")
		if err != nil {
			b.Fatal(err)
		}
		if _, err := op.Get("Email"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkList_Values(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(`<Station><Logs>`)
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, `<Entry call="C%d"><Freq>%d.5</Freq></Entry>`, i, i)
	}
	sb.WriteString(`</Logs></Station>`)
	v, err := Create[benchStation](New(), sb.String())
	if err != nil {
		b.Fatal(err)
	}
	logs, err := v.List("Logs")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := logs.Values(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdapter_CreateAndDecode(b *testing.B) {
	a := New()
	a.WarmMetadata(benchStation{})
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, err := Create[benchStation](a, benchDoc)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := Decode[benchStation](v); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAdapter_Concurrent(b *testing.B) {
	a := New()
	a.WarmMetadata(benchStation{})
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			v, err := Create[benchStation](a, benchDoc)
			if err != nil {
				b.Fatal(err)
			}
			if err := v.Set("Call", "N0CALL"); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkShape_Build(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := New().ShapeOf(benchStation{}); err != nil {
			b.Fatal(err)
		}
	}
}
