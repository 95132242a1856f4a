package common

import (
	"encoding/gob"
	"io"
	"reflect"
)

type Serialiser interface {
	Serialise(elem ...interface{}) error
	DeSerialise(elem ...interface{}) error
}

type Serialisable interface {
	Serialise(e Serialiser) error
	DeSerialise(e Serialiser) error
}

func NewSerialiser(rw io.ReadWriter) Serialiser {
	return &gobSerialiser{
		encoder: gob.NewEncoder(rw),
		decoder: gob.NewDecoder(rw),
	}
}

type gobSerialiser struct {
	encoder *gob.Encoder
	decoder *gob.Decoder
}

func (g *gobSerialiser) Serialise(elem ...interface{}) error {
	for _, elem := range elem {
		if err := g.encode(elem); err != nil {
			return err
		}
	}
	return nil
}
func (g *gobSerialiser) encode(elem interface{}) error {
	// components serialise themselves, plain values go through gob
	if e, ok := elem.(Serialisable); ok {
		return e.Serialise(g)
	}
	if reflect.ValueOf(elem).Kind() == reflect.Array {
		for i := 0; i < reflect.ValueOf(elem).Len(); i++ {
			v := reflect.ValueOf(elem).Index(i)
			if e, ok := v.Interface().(Serialisable); ok {
				if err := e.Serialise(g); err != nil {
					return err
				}
				continue
			}
			return g.encoder.Encode(elem)
		}
		return nil
	}
	return g.encoder.Encode(elem)
}

func (g *gobSerialiser) DeSerialise(elem ...interface{}) error {
	for _, e := range elem {
		if err := g.decode(e); err != nil {
			return err
		}
	}
	return nil
}
func (g *gobSerialiser) decode(elem interface{}) error {
	if e, ok := elem.(Serialisable); ok {
		return e.DeSerialise(g)
	}
	if reflect.ValueOf(elem).Kind() == reflect.Array {
		for i := 0; i < reflect.ValueOf(elem).Len(); i++ {
			v := reflect.ValueOf(elem).Index(i)
			if e, ok := v.Interface().(Serialisable); ok {
				if err := e.DeSerialise(g); err != nil {
					return err
				}
				continue
			}
			return g.decoder.Decode(elem)
		}
		return nil
	}
	return g.decoder.Decode(elem)
}
